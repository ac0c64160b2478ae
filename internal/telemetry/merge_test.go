package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-balloon-watch/internal/models"
)

func TestMerge_CombinesHoursInOrder(t *testing.T) {
	snapshots := []models.Snapshot{
		{Hour: 0, Doc: decode(t, `[[10, 20], [11, 21]]`)},
		{Hour: 1, Doc: decode(t, `[[30, 40]]`)},
	}

	res := Merge(snapshots)

	require.Len(t, res.Positions, 3)
	assert.Equal(t, "balloon-0-0", res.Positions[0].ID)
	assert.Equal(t, "balloon-0-1", res.Positions[1].ID)
	assert.Equal(t, "balloon-1-0", res.Positions[2].ID)
	assert.Equal(t, 2, res.HoursSupported)
}

func TestMerge_CollisionKeepsMoreRecentHour(t *testing.T) {
	// Simulates an ID scheme that reuses IDs across hours: the same doc
	// at hour 5 and hour 0 produces colliding IDs once hour indexes match.
	older := models.Position{ID: "balloon-x", Latitude: 1, Longitude: 1, HourIndex: 5}
	newer := models.Position{ID: "balloon-x", Latitude: 2, Longitude: 2, HourIndex: 0}

	acc := NewAccumulator()
	acc.Add(newer)
	acc.Add(older)
	require.Len(t, acc.Positions(), 1)
	assert.Equal(t, 0, acc.Positions()[0].HourIndex)
	assert.Equal(t, 2.0, acc.Positions()[0].Latitude)

	// Same outcome when the older observation is seen first.
	acc = NewAccumulator()
	acc.Add(older)
	acc.Add(newer)
	require.Len(t, acc.Positions(), 1)
	assert.Equal(t, 0, acc.Positions()[0].HourIndex)
}

func TestMerge_Idempotent(t *testing.T) {
	snapshots := []models.Snapshot{
		{Hour: 0, Doc: decode(t, `[[10, 20]]`)},
		{Hour: 1, Doc: decode(t, `[[30, 40], [50, 60]]`)},
	}

	first := Merge(snapshots)
	second := Merge(snapshots)

	assert.Equal(t, first, second)
}

func TestMerge_MissingAndUnsupportedHours(t *testing.T) {
	snapshots := []models.Snapshot{
		{Hour: 0, Doc: decode(t, `[[10, 20]]`)},
		{Hour: 1, Doc: nil}, // failed fetch
		{Hour: 2, Doc: decode(t, `{"weird": true}`)},
		{Hour: 3, Doc: decode(t, `[]`)},
	}

	res := Merge(snapshots)

	assert.Len(t, res.Positions, 1)
	assert.Equal(t, 2, res.HoursSupported)
	assert.Equal(t, 3, res.HoursEmpty)
}

func TestMerge_Empty(t *testing.T) {
	res := Merge(nil)
	assert.Empty(t, res.Positions)
}
