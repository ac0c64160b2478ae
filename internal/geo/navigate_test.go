package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocus_Point(t *testing.T) {
	g := Geometry{Type: TypePoint, Point: []float64{-98.5, 35.2}}

	target, ok := Focus(g)

	require.True(t, ok)
	assert.Equal(t, 35.2, target.Center.Latitude)
	assert.Equal(t, -98.5, target.Center.Longitude)
	assert.Equal(t, PointZoom, target.Zoom)
	assert.Nil(t, target.Bounds)
}

func TestFocus_Polygon(t *testing.T) {
	// Square with vertices at (lat, lon) (0,0) (2,0) (2,2) (0,2).
	g := Geometry{Type: TypePolygon, Polygon: [][][]float64{
		{{0, 0}, {0, 2}, {2, 2}, {2, 0}},
	}}

	target, ok := Focus(g)

	require.True(t, ok)
	assert.InDelta(t, 1.0, target.Center.Latitude, 1e-9)
	assert.InDelta(t, 1.0, target.Center.Longitude, 1e-9)
	assert.Equal(t, BoundsMaxZoom, target.Zoom)

	require.NotNil(t, target.Bounds)
	b := target.Bounds
	assert.LessOrEqual(t, b.MinLat, 0.0)
	assert.GreaterOrEqual(t, b.MaxLat, 2.0)
	assert.LessOrEqual(t, b.MinLon, 0.0)
	assert.GreaterOrEqual(t, b.MaxLon, 2.0)
}

func TestFocus_PolygonOnlyFirstRing(t *testing.T) {
	g := Geometry{Type: TypePolygon, Polygon: [][][]float64{
		{{0, 0}, {0, 2}, {2, 2}, {2, 0}},
		{{100, 80}, {101, 80}, {101, 81}}, // hole ring, ignored
	}}

	target, ok := Focus(g)

	require.True(t, ok)
	assert.InDelta(t, 1.0, target.Center.Latitude, 1e-9)
	assert.Less(t, target.Bounds.MaxLon, 50.0)
}

func TestFocus_MultiPolygonUsesFirstPolygon(t *testing.T) {
	g := Geometry{Type: TypeMultiPolygon, MultiPolygon: [][][][]float64{
		{{{10, 10}, {10, 12}, {12, 12}, {12, 10}}},
		{{{50, 50}, {50, 52}, {52, 52}}},
	}}

	target, ok := Focus(g)

	require.True(t, ok)
	assert.InDelta(t, 11.0, target.Center.Latitude, 1e-9)
	assert.InDelta(t, 11.0, target.Center.Longitude, 1e-9)
}

func TestFocus_SkipsDegenerateVertices(t *testing.T) {
	g := Geometry{Type: TypePolygon, Polygon: [][][]float64{
		{{0, 0}, {7}, {0, 2}},
	}}

	target, ok := Focus(g)

	require.True(t, ok)
	assert.InDelta(t, 1.0, target.Center.Latitude, 1e-9)
	assert.InDelta(t, 0.0, target.Center.Longitude, 1e-9)
}

func TestFocus_NoTarget(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
	}{
		{"unsupported type", Geometry{Type: "LineString"}},
		{"empty geometry", Geometry{}},
		{"point without coordinates", Geometry{Type: TypePoint}},
		{"polygon without rings", Geometry{Type: TypePolygon}},
		{"polygon with empty ring", Geometry{Type: TypePolygon, Polygon: [][][]float64{{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Focus(tt.g)
			assert.False(t, ok)
		})
	}
}
