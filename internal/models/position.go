package models

// Position is a single validated balloon observation from one hourly snapshot.
type Position struct {
	ID        string // "balloon-{hour}-{index}", stable within one extraction run
	Latitude  float64
	Longitude float64
	Altitude  *float64 // nil when the feed value was absent or unparseable
	HourIndex int      // 0 = most recent snapshot, 23 = oldest
}

// Snapshot is one hour's raw feed payload, already decoded from JSON.
// Doc is nil when the fetch for that hour failed; the extractor treats
// that the same as an unrecognized payload shape.
type Snapshot struct {
	Hour int
	Doc  any
}
