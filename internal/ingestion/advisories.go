package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mr1hm/go-balloon-watch/internal/geo"
	"github.com/mr1hm/go-balloon-watch/internal/models"
)

type advisoryFeed struct {
	Features []json.RawMessage `json:"features"`
}

type advisoryFeature struct {
	ID         string             `json:"id"`
	Properties advisoryProperties `json:"properties"`
	Geometry   geo.Geometry       `json:"geometry"`
}

type advisoryProperties struct {
	ID          string `json:"id"`
	Event       string `json:"event"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	AreaDesc    string `json:"areaDesc"`
	Severity    string `json:"severity"`
	Urgency     string `json:"urgency"`
	Onset       string `json:"onset"`
	Expires     string `json:"expires"`
}

// fetchAdvisories pulls the advisory FeatureCollection and converts each
// feature that decodes cleanly. Features are decoded one at a time so a
// single malformed entry is skipped rather than sinking the whole batch.
// Duplicate ids are collapsed here too (first occurrence wins) — the
// repository keys advisories by id, and a repeated feed entry must not
// reject the refresh. Geometry filtering and classification happen
// downstream in hazard.
func (m *Manager) fetchAdvisories(ctx context.Context) ([]models.Advisory, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.Feeds.AdvisoriesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error doing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}

	var feed advisoryFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	advisories := make([]models.Advisory, 0, len(feed.Features))
	seen := make(map[string]struct{}, len(feed.Features))
	for idx, raw := range feed.Features {
		var f advisoryFeature
		if err := json.Unmarshal(raw, &f); err != nil {
			slog.Warn("advisory feature decode failed", "index", idx, "error", err)
			continue
		}

		id := f.ID
		if id == "" {
			id = f.Properties.ID
		}
		if id == "" {
			id = fmt.Sprintf("advisory-%d", idx)
		}
		if _, dup := seen[id]; dup {
			slog.Warn("duplicate advisory id, keeping first occurrence", "id", id, "index", idx)
			continue
		}
		seen[id] = struct{}{}

		advisories = append(advisories, models.Advisory{
			ID:          id,
			Event:       f.Properties.Event,
			Headline:    f.Properties.Headline,
			Description: f.Properties.Description,
			AreaDesc:    f.Properties.AreaDesc,
			Severity:    f.Properties.Severity,
			Urgency:     f.Properties.Urgency,
			Onset:       parseFeedTime(f.Properties.Onset, id),
			Expires:     parseFeedTime(f.Properties.Expires, id),
			Geometry:    f.Geometry,
		})
	}

	return advisories, nil
}

func parseFeedTime(value, id string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		slog.Warn("advisory timestamp parsing failed", "id", id, "error", err.Error())
		return time.Time{}
	}
	return t
}
