package telemetry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestExtract_BareSequence(t *testing.T) {
	doc := decode(t, `[[10.5, -20.25, 13000], [45, 90]]`)

	res := Extract(doc, 0)

	require.True(t, res.Supported)
	require.Len(t, res.Positions, 2)
	assert.Equal(t, 0, res.Skipped)

	first := res.Positions[0]
	assert.Equal(t, "balloon-0-0", first.ID)
	assert.Equal(t, 10.5, first.Latitude)
	assert.Equal(t, -20.25, first.Longitude)
	require.NotNil(t, first.Altitude)
	assert.Equal(t, 13000.0, *first.Altitude)
	assert.Equal(t, 0, first.HourIndex)

	second := res.Positions[1]
	assert.Equal(t, "balloon-0-1", second.ID)
	assert.Nil(t, second.Altitude)
}

func TestExtract_ShapePrecedence(t *testing.T) {
	t.Run("balloons key", func(t *testing.T) {
		doc := decode(t, `{"balloons": [[1, 2]]}`)
		res := Extract(doc, 3)
		require.True(t, res.Supported)
		require.Len(t, res.Positions, 1)
		assert.Equal(t, "balloon-3-0", res.Positions[0].ID)
	})

	t.Run("data key", func(t *testing.T) {
		doc := decode(t, `{"data": [[1, 2]]}`)
		res := Extract(doc, 0)
		require.True(t, res.Supported)
		assert.Len(t, res.Positions, 1)
	})

	t.Run("balloons wins over data", func(t *testing.T) {
		doc := decode(t, `{"balloons": [[1, 2]], "data": [[3, 4], [5, 6]]}`)
		res := Extract(doc, 0)
		assert.Len(t, res.Positions, 1)
	})

	t.Run("non-sequence balloons falls through to data", func(t *testing.T) {
		doc := decode(t, `{"balloons": "nope", "data": [[3, 4]]}`)
		res := Extract(doc, 0)
		require.True(t, res.Supported)
		assert.Len(t, res.Positions, 1)
	})

	t.Run("unsupported shape", func(t *testing.T) {
		doc := decode(t, `{"positions": [[1, 2]]}`)
		res := Extract(doc, 0)
		assert.False(t, res.Supported)
		assert.Empty(t, res.Positions)
	})

	t.Run("nil payload", func(t *testing.T) {
		res := Extract(nil, 0)
		assert.False(t, res.Supported)
		assert.Empty(t, res.Positions)
	})

	t.Run("scalar payload", func(t *testing.T) {
		res := Extract(decode(t, `42`), 0)
		assert.False(t, res.Supported)
		assert.Empty(t, res.Positions)
	})
}

func TestExtract_ObjectElements(t *testing.T) {
	t.Run("lat lon alt keys", func(t *testing.T) {
		doc := decode(t, `[{"lat": 12, "lon": 34, "alt": 5000}]`)
		res := Extract(doc, 0)
		require.Len(t, res.Positions, 1)
		p := res.Positions[0]
		assert.Equal(t, 12.0, p.Latitude)
		assert.Equal(t, 34.0, p.Longitude)
		require.NotNil(t, p.Altitude)
		assert.Equal(t, 5000.0, *p.Altitude)
	})

	t.Run("alternate keys", func(t *testing.T) {
		doc := decode(t, `[{"latitude": "12.5", "lng": "-34", "z": 1}]`)
		res := Extract(doc, 0)
		require.Len(t, res.Positions, 1)
		assert.Equal(t, 12.5, res.Positions[0].Latitude)
		assert.Equal(t, -34.0, res.Positions[0].Longitude)
	})

	t.Run("positional string keys", func(t *testing.T) {
		doc := decode(t, `[{"0": 1, "1": 2, "2": 3}]`)
		res := Extract(doc, 0)
		require.Len(t, res.Positions, 1)
		assert.Equal(t, 1.0, res.Positions[0].Latitude)
		assert.Equal(t, 2.0, res.Positions[0].Longitude)
	})

	t.Run("null preferred key falls through to next", func(t *testing.T) {
		doc := decode(t, `[{"lat": null, "latitude": 5, "lon": 6}]`)
		res := Extract(doc, 0)
		require.Len(t, res.Positions, 1)
		assert.Equal(t, 5.0, res.Positions[0].Latitude)
	})

	t.Run("missing longitude rejected", func(t *testing.T) {
		doc := decode(t, `[{"lat": 5}]`)
		res := Extract(doc, 0)
		assert.Empty(t, res.Positions)
		assert.Equal(t, 1, res.Skipped)
	})
}

func TestExtract_RangeValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kept int
	}{
		{"boundary values kept", `[[90, 180], [-90, -180]]`, 2},
		{"latitude too high", `[[91, 0]]`, 0},
		{"latitude too low", `[[-90.01, 0]]`, 0},
		{"longitude too high", `[[0, 180.5]]`, 0},
		{"longitude too low", `[[0, -181]]`, 0},
		{"equator origin", `[[0, 0]]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Extract(decode(t, tt.raw), 0)
			assert.Len(t, res.Positions, tt.kept)
		})
	}
}

func TestExtract_MalformedElementsSkippedIndividually(t *testing.T) {
	doc := decode(t, `[[10, 20], "garbage", [999, 0], {"lat": "abc", "lon": 1}, null, [30, 40, "oops"], [1]]`)

	res := Extract(doc, 2)

	require.True(t, res.Supported)
	require.Len(t, res.Positions, 2)
	assert.Equal(t, 5, res.Skipped)

	// IDs keep the original element index, not the surviving order.
	assert.Equal(t, "balloon-2-0", res.Positions[0].ID)
	assert.Equal(t, "balloon-2-5", res.Positions[1].ID)

	// Unparseable altitude attaches nothing but never rejects the record.
	assert.Nil(t, res.Positions[1].Altitude)
}

func TestExtract_OrderPreserved(t *testing.T) {
	doc := decode(t, `[[1, 1], [2, 2], [3, 3]]`)
	res := Extract(doc, 0)
	require.Len(t, res.Positions, 3)
	for i, p := range res.Positions {
		assert.Equal(t, float64(i+1), p.Latitude)
	}
}

func TestExtract_EmptySnapshot(t *testing.T) {
	res := Extract(decode(t, `[]`), 0)
	assert.True(t, res.Supported)
	assert.Empty(t, res.Positions)
}
