package models

import (
	"time"

	"github.com/mr1hm/go-balloon-watch/internal/geo"
)

// Tier is the coarse severity bucket an advisory is classified into.
// Tiers drive both the display color and the list sort order.
type Tier string

const (
	TierExtreme  Tier = "extreme"
	TierSevere   Tier = "severe"
	TierModerate Tier = "moderate"
	TierMinor    Tier = "minor"
	TierUnknown  Tier = "unknown"
)

// Advisory is one geographically scoped hazard advisory. Severity and
// Urgency hold the raw feed values; Tier and Color are derived by the
// classifier after ingestion.
type Advisory struct {
	ID          string
	Event       string
	Headline    string
	Description string
	AreaDesc    string
	Severity    string
	Urgency     string
	Onset       time.Time
	Expires     time.Time
	Geometry    geo.Geometry

	Tier  Tier
	Color string
}
