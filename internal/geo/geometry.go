package geo

import "encoding/json"

// Geometry type names, per GeoJSON convention.
const (
	TypePoint        = "Point"
	TypePolygon      = "Polygon"
	TypeMultiPolygon = "MultiPolygon"
)

// Coordinates is a single geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Bounds is an axis-aligned box enclosing a set of coordinates.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Geometry holds a GeoJSON geometry. Only Point, Polygon and MultiPolygon
// are supported; anything else (including malformed coordinates for a
// supported type) decodes to an unsupported geometry instead of failing.
// Coordinate pairs are [lon, lat] as in the wire format.
type Geometry struct {
	Type         string
	Point        []float64
	Polygon      [][][]float64
	MultiPolygon [][][][]float64
}

// Supported reports whether the geometry is one of the three kinds the
// classifier and navigator understand.
func (g Geometry) Supported() bool {
	switch g.Type {
	case TypePoint:
		return len(g.Point) >= 2
	case TypePolygon:
		return len(g.Polygon) > 0 && len(g.Polygon[0]) > 0
	case TypeMultiPolygon:
		return len(g.MultiPolygon) > 0 && len(g.MultiPolygon[0]) > 0 && len(g.MultiPolygon[0][0]) > 0
	}
	return false
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Type = raw.Type
	switch raw.Type {
	case TypePoint:
		if err := json.Unmarshal(raw.Coordinates, &g.Point); err != nil {
			g.Point = nil
		}
	case TypePolygon:
		if err := json.Unmarshal(raw.Coordinates, &g.Polygon); err != nil {
			g.Polygon = nil
		}
	case TypeMultiPolygon:
		if err := json.Unmarshal(raw.Coordinates, &g.MultiPolygon); err != nil {
			g.MultiPolygon = nil
		}
	}
	return nil
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	raw := struct {
		Type        string `json:"type"`
		Coordinates any    `json:"coordinates,omitempty"`
	}{Type: g.Type}

	switch g.Type {
	case TypePoint:
		raw.Coordinates = g.Point
	case TypePolygon:
		raw.Coordinates = g.Polygon
	case TypeMultiPolygon:
		raw.Coordinates = g.MultiPolygon
	}
	return json.Marshal(raw)
}

// firstRing returns the outer ring used for navigation: the first ring of a
// Polygon, or the first polygon's first ring of a MultiPolygon.
func (g Geometry) firstRing() [][]float64 {
	switch g.Type {
	case TypePolygon:
		if len(g.Polygon) > 0 {
			return g.Polygon[0]
		}
	case TypeMultiPolygon:
		if len(g.MultiPolygon) > 0 && len(g.MultiPolygon[0]) > 0 {
			return g.MultiPolygon[0][0]
		}
	}
	return nil
}
