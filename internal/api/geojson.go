package api

import (
	"github.com/mr1hm/go-balloon-watch/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func toGeoJSON(positions []models.Position) FeatureCollection {
	features := make([]Feature, 0, len(positions))

	for _, p := range positions {
		props := map[string]any{
			"id":         p.ID,
			"hour_index": p.HourIndex,
		}
		if p.Altitude != nil {
			props["altitude"] = *p.Altitude
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{p.Longitude, p.Latitude},
			},
			Properties: props,
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
