package telemetry

import (
	"fmt"

	"github.com/mr1hm/go-balloon-watch/internal/models"
)

// Latitude/longitude bounds, boundary inclusive.
const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// Key probe order for object-shaped elements. First present key wins; the
// string digits cover feeds that serialize tuples as keyed objects.
var (
	latKeys = []string{"lat", "latitude", "y", "0"}
	lonKeys = []string{"lon", "lng", "longitude", "1"}
	altKeys = []string{"alt", "altitude", "z", "2"}
)

// Result is the outcome of extracting one hourly snapshot. Supported
// distinguishes "the payload matched no recognized shape" from "the
// payload was a recognized shape that happened to contain nothing
// usable" — callers otherwise could not tell the two apart.
type Result struct {
	Positions []models.Position
	Skipped   int  // elements present but rejected (malformed or out of range)
	Supported bool // payload matched one of the recognized shapes
}

// Extract pulls validated positions out of one hour's decoded payload.
// The payload may be the position sequence itself, or an object exposing
// it under "balloons" or "data" (probed in that order). Elements are
// either [lat, lon, alt?] tuples or keyed objects; each coordinate goes
// through Number. A position is kept only when latitude and longitude are
// both present and in range — a failed altitude alone never rejects it,
// and a malformed element never aborts the rest of the snapshot.
func Extract(doc any, hour int) Result {
	seq, ok := sequence(doc)
	if !ok {
		return Result{}
	}

	res := Result{Supported: true, Positions: make([]models.Position, 0, len(seq))}
	for idx, elem := range seq {
		lat, lon, alt, ok := coordinates(elem)
		if !ok || lat < minLatitude || lat > maxLatitude || lon < minLongitude || lon > maxLongitude {
			res.Skipped++
			continue
		}
		res.Positions = append(res.Positions, models.Position{
			ID:        fmt.Sprintf("balloon-%d-%d", hour, idx),
			Latitude:  lat,
			Longitude: lon,
			Altitude:  alt,
			HourIndex: hour,
		})
	}
	return res
}

func sequence(doc any) ([]any, bool) {
	switch v := doc.(type) {
	case []any:
		return v, true
	case map[string]any:
		if s, ok := v["balloons"].([]any); ok {
			return s, true
		}
		if s, ok := v["data"].([]any); ok {
			return s, true
		}
	}
	return nil, false
}

func coordinates(elem any) (float64, float64, *float64, bool) {
	switch e := elem.(type) {
	case []any:
		if len(e) < 2 {
			return 0, 0, nil, false
		}
		lat, latOK := Number(e[0])
		lon, lonOK := Number(e[1])
		if !latOK || !lonOK {
			return 0, 0, nil, false
		}
		var alt *float64
		if len(e) >= 3 {
			if a, ok := Number(e[2]); ok {
				alt = &a
			}
		}
		return lat, lon, alt, true
	case map[string]any:
		lat, latOK := probe(e, latKeys)
		lon, lonOK := probe(e, lonKeys)
		if !latOK || !lonOK {
			return 0, 0, nil, false
		}
		var alt *float64
		if a, ok := probe(e, altKeys); ok {
			alt = &a
		}
		return lat, lon, alt, true
	}
	return 0, 0, nil, false
}

func probe(obj map[string]any, keys []string) (float64, bool) {
	for _, k := range keys {
		v, present := obj[k]
		if !present || v == nil {
			continue
		}
		return Number(v)
	}
	return 0, false
}
