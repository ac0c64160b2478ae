package telemetry

import "github.com/mr1hm/go-balloon-watch/internal/models"

// MergeResult is the outcome of merging a full refresh cycle's snapshots.
// The counters let callers and metrics distinguish a quiet feed from a
// broken one without inspecting individual hours.
type MergeResult struct {
	Positions      []models.Position
	HoursSupported int // snapshots that matched a recognized payload shape
	HoursEmpty     int // snapshots contributing zero positions
	Skipped        int // elements rejected across all hours
}

// Accumulator deduplicates positions by ID while preserving first-insertion
// order. On an ID collision the entry with the strictly smaller HourIndex
// wins, so a future ID scheme that reuses IDs across hours keeps the most
// recent observation. Under the current ID scheme (hour embedded in the ID)
// collisions across hours cannot happen; the rule is a safeguard.
type Accumulator struct {
	index     map[string]int
	positions []models.Position
}

func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[string]int)}
}

func (a *Accumulator) Add(p models.Position) {
	i, seen := a.index[p.ID]
	if !seen {
		a.index[p.ID] = len(a.positions)
		a.positions = append(a.positions, p)
		return
	}
	if a.positions[i].HourIndex > p.HourIndex {
		a.positions[i] = p
	}
}

func (a *Accumulator) Positions() []models.Position {
	return a.positions
}

// Merge runs extraction over the snapshots in the given order (hour 0,
// the most recent, first) and deduplicates the results. Any display cap
// is applied by the caller after merging, never here, so truncation
// cannot bias which hour's observation survives.
func Merge(snapshots []models.Snapshot) MergeResult {
	var out MergeResult
	acc := NewAccumulator()

	for _, snap := range snapshots {
		res := Extract(snap.Doc, snap.Hour)
		if res.Supported {
			out.HoursSupported++
		}
		if len(res.Positions) == 0 {
			out.HoursEmpty++
		}
		out.Skipped += res.Skipped

		for _, p := range res.Positions {
			acc.Add(p)
		}
	}

	out.Positions = acc.Positions()
	return out
}
