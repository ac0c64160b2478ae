package hazard

import (
	"sort"

	"github.com/mr1hm/go-balloon-watch/internal/models"
)

// tierRank fixes the list order: extreme first, unknown last.
var tierRank = map[models.Tier]int{
	models.TierExtreme:  0,
	models.TierSevere:   1,
	models.TierModerate: 2,
	models.TierMinor:    3,
	models.TierUnknown:  4,
}

func rank(t models.Tier) int {
	if r, ok := tierRank[t]; ok {
		return r
	}
	return len(tierRank)
}

// Rank stable-sorts advisories by tier severity, most severe first.
// Unrecognized tiers sort last. Advisories within a tier keep their feed
// order.
func Rank(advisories []models.Advisory) {
	sort.SliceStable(advisories, func(i, j int) bool {
		return rank(advisories[i].Tier) < rank(advisories[j].Tier)
	})
}

// Stats counts advisories excluded before ranking.
type Stats struct {
	DroppedGeometry int
	DroppedExpired  int
}

// Process prepares a raw advisory batch for display: advisories with
// unsupported geometry or an expiry in the past are dropped, the rest are
// classified and ranked. The input slice is not modified.
func Process(advisories []models.Advisory) ([]models.Advisory, Stats) {
	now := clock.Now()

	var stats Stats
	out := make([]models.Advisory, 0, len(advisories))
	for _, adv := range advisories {
		if !adv.Geometry.Supported() {
			stats.DroppedGeometry++
			continue
		}
		if !adv.Expires.IsZero() && adv.Expires.Before(now) {
			stats.DroppedExpired++
			continue
		}
		c := Classify(adv)
		adv.Tier = c.Tier
		adv.Color = c.Color
		out = append(out, adv)
	}

	Rank(out)
	return out, stats
}
