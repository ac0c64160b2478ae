package hazard

import "github.com/jonboulle/clockwork"

// clock is the package time source, swappable so tests can freeze time
// around advisory expiry checks.
var clock = clockwork.NewRealClock()

// SetClock replaces the time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
