package hazard

import (
	"strings"

	"github.com/mr1hm/go-balloon-watch/internal/models"
)

// Display colors per tier.
const (
	ColorExtreme  = "#8b0000" // dark red
	ColorSevere   = "#ff8c00" // orange
	ColorModerate = "#ffd700" // yellow
	ColorMinor    = "#2e8b57" // green
	ColorUnknown  = "#808080" // gray
)

// Classification is the derived display bucket for one advisory.
type Classification struct {
	Tier  models.Tier
	Color string
}

// Classify maps an advisory's severity and urgency to a tier and color.
// Rules apply in priority order, first match wins; comparisons are
// case-insensitive. An immediate urgency escalates to extreme no matter
// what the severity says, and an expected urgency backstops advisories
// whose severity matched nothing. A feed-provided "unknown" severity is
// green like minor; a missing severity falls all the way through to gray.
func Classify(adv models.Advisory) Classification {
	severity := normalize(adv.Severity)
	urgency := normalize(adv.Urgency)

	switch {
	case severity == "extreme" || urgency == "immediate":
		return Classification{Tier: models.TierExtreme, Color: ColorExtreme}
	case severity == "severe":
		return Classification{Tier: models.TierSevere, Color: ColorSevere}
	case severity == "moderate":
		return Classification{Tier: models.TierModerate, Color: ColorModerate}
	case severity == "minor":
		return Classification{Tier: models.TierMinor, Color: ColorMinor}
	case severity == "unknown":
		return Classification{Tier: models.TierUnknown, Color: ColorMinor}
	case urgency == "expected":
		return Classification{Tier: models.TierSevere, Color: ColorSevere}
	default:
		return Classification{Tier: models.TierUnknown, Color: ColorUnknown}
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
