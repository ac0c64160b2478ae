package geo

const (
	// PointZoom is the zoom level used when flying to a point geometry.
	PointZoom = 8

	// BoundsMaxZoom caps how far the map may zoom in when fitting a
	// polygon's bounding box (small polygons would otherwise zoom past
	// any useful context).
	BoundsMaxZoom = 10

	// boundsPadding expands a polygon's bounding box on every side, in
	// degrees, so the shape does not touch the viewport edge.
	boundsPadding = 0.25
)

// Target is a map navigation destination derived from an advisory's
// geometry. Bounds is nil for point targets; for polygon targets Zoom is
// the maximum the renderer may use while fitting Bounds.
type Target struct {
	Center Coordinates `json:"center"`
	Zoom   int         `json:"zoom"`
	Bounds *Bounds     `json:"bounds,omitempty"`
}

// Focus computes the navigation target for a geometry. Points center on
// themselves at a fixed zoom. Polygons (and the first polygon of a
// MultiPolygon) center on the arithmetic mean of the outer ring's vertices,
// with a padded bounding box — a fast anchor, not a true area centroid.
// Unsupported or degenerate geometry produces no target.
func Focus(g Geometry) (Target, bool) {
	if g.Type == TypePoint {
		if len(g.Point) < 2 {
			return Target{}, false
		}
		return Target{
			Center: Coordinates{Latitude: g.Point[1], Longitude: g.Point[0]},
			Zoom:   PointZoom,
		}, true
	}

	ring := g.firstRing()
	var (
		sumLat, sumLon float64
		bounds         Bounds
		n              int
	)
	for _, vertex := range ring {
		if len(vertex) < 2 {
			continue
		}
		lon, lat := vertex[0], vertex[1]
		if n == 0 {
			bounds = Bounds{MinLat: lat, MaxLat: lat, MinLon: lon, MaxLon: lon}
		} else {
			bounds.MinLat = min(bounds.MinLat, lat)
			bounds.MaxLat = max(bounds.MaxLat, lat)
			bounds.MinLon = min(bounds.MinLon, lon)
			bounds.MaxLon = max(bounds.MaxLon, lon)
		}
		sumLat += lat
		sumLon += lon
		n++
	}
	if n == 0 {
		return Target{}, false
	}

	bounds.MinLat -= boundsPadding
	bounds.MaxLat += boundsPadding
	bounds.MinLon -= boundsPadding
	bounds.MaxLon += boundsPadding

	return Target{
		Center: Coordinates{Latitude: sumLat / float64(n), Longitude: sumLon / float64(n)},
		Zoom:   BoundsMaxZoom,
		Bounds: &bounds,
	}, true
}
