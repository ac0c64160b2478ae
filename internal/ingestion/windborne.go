package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mr1hm/go-balloon-watch/internal/models"
	"github.com/mr1hm/go-balloon-watch/internal/worker"
)

// fetchSnapshots pulls the configured number of hourly snapshots
// concurrently through a worker pool. Each job owns one slot of the
// result slice, so no locking is needed. A failed or malformed fetch
// leaves a nil-Doc snapshot in place: the merge step treats it as an
// empty hour, never as a fatal error.
func (m *Manager) fetchSnapshots(ctx context.Context) []models.Snapshot {
	hours := m.cfg.Feeds.HoursToFetch
	snapshots := make([]models.Snapshot, hours)

	// Buffer sized to the job count so Submit never blocks, even when a
	// cancelled context makes the workers exit before draining.
	pool := worker.NewPool(m.cfg.Worker.Count, hours, func(ctx context.Context, hour int) error {
		snapshots[hour] = m.fetchSnapshot(ctx, hour)
		return nil
	})
	pool.Start(ctx)
	for h := 0; h < hours; h++ {
		pool.Submit(h)
	}
	pool.Stop()

	return snapshots
}

func (m *Manager) fetchSnapshot(ctx context.Context, hour int) models.Snapshot {
	snap := models.Snapshot{Hour: hour}

	url := fmt.Sprintf("%s/%02d.json", m.cfg.Feeds.WindborneURL, hour)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		m.metrics.SnapshotsFetched.WithLabelValues("error").Inc()
		slog.Warn("snapshot request failed", "hour", hour, "error", err)
		return snap
	}

	resp, err := m.client.Do(req)
	if err != nil {
		m.metrics.SnapshotsFetched.WithLabelValues("error").Inc()
		slog.Warn("snapshot fetch failed", "hour", hour, "error", err)
		return snap
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.metrics.SnapshotsFetched.WithLabelValues("error").Inc()
		slog.Warn("snapshot fetch failed", "hour", hour, "status", resp.Status)
		return snap
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		m.metrics.SnapshotsFetched.WithLabelValues("error").Inc()
		slog.Warn("snapshot read failed", "hour", hour, "error", err)
		return snap
	}

	// The feed occasionally serves truncated or otherwise invalid JSON.
	// A snapshot that fails to decode contributes zero positions.
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		m.metrics.SnapshotsFetched.WithLabelValues("malformed").Inc()
		slog.Warn("snapshot decode failed", "hour", hour, "error", err)
		return snap
	}

	m.metrics.SnapshotsFetched.WithLabelValues("success").Inc()
	snap.Doc = doc
	return snap
}
