package ingestion

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mr1hm/go-balloon-watch/internal/config"
	"github.com/mr1hm/go-balloon-watch/internal/hazard"
	"github.com/mr1hm/go-balloon-watch/internal/observability"
	"github.com/mr1hm/go-balloon-watch/internal/repository"
	"github.com/mr1hm/go-balloon-watch/internal/telemetry"
)

// Manager runs the two refresh loops: the position feed (hourly) and the
// advisory feed (every 30 minutes). The loops share nothing but the
// repository; each refresh re-fetches and re-derives everything from
// scratch and replaces the stored set wholesale.
type Manager struct {
	cfg        *config.Config
	positions  repository.PositionRepository
	advisories repository.AdvisoryRepository
	metrics    *observability.Metrics
	client     *http.Client
	wg         sync.WaitGroup
}

func NewManager(cfg *config.Config, positions repository.PositionRepository, advisories repository.AdvisoryRepository, metrics *observability.Metrics) *Manager {
	return &Manager{
		cfg:        cfg,
		positions:  positions,
		advisories: advisories,
		metrics:    metrics,
		client: &http.Client{
			Timeout: cfg.Feeds.FetchTimeout,
		},
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.wg.Add(1)
	go m.runPoller(ctx, "positions", m.cfg.Feeds.PositionsInterval, m.refreshPositions)

	m.wg.Add(1)
	go m.runPoller(ctx, "advisories", m.cfg.Feeds.AdvisoriesInterval, m.refreshAdvisories)
}

func (m *Manager) runPoller(ctx context.Context, feed string, interval time.Duration, refresh func(context.Context) error) {
	defer m.wg.Done()
	slog.Info("starting poller", "feed", feed, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial refresh
	m.poll(ctx, feed, refresh)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "feed", feed)
			return
		case <-ticker.C:
			m.poll(ctx, feed, refresh)
		}
	}
}

func (m *Manager) poll(ctx context.Context, feed string, refresh func(context.Context) error) {
	log := slog.With("feed", feed, "run_id", uuid.NewString())
	log.Debug("refreshing")

	start := time.Now()
	if err := refresh(ctx); err != nil {
		log.Error("refresh failed", "error", err)
		return
	}

	m.metrics.RefreshDuration.WithLabelValues(feed).Observe(time.Since(start).Seconds())
	m.metrics.LastRefresh.WithLabelValues(feed).SetToCurrentTime()
	log.Debug("refresh complete", "duration", time.Since(start))
}

func (m *Manager) refreshPositions(ctx context.Context) error {
	snapshots := m.fetchSnapshots(ctx)

	res := telemetry.Merge(snapshots)
	m.metrics.PositionsMerged.Set(float64(len(res.Positions)))
	m.metrics.ElementsSkipped.Add(float64(res.Skipped))

	// Stale-update guard: a refresh caught mid-flight by shutdown must not
	// write its result.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.positions.ReplacePositions(ctx, res.Positions); err != nil {
		return err
	}

	slog.Info("positions refreshed",
		"positions", len(res.Positions),
		"hours_supported", res.HoursSupported,
		"hours_empty", res.HoursEmpty,
		"skipped", res.Skipped)
	return nil
}

func (m *Manager) refreshAdvisories(ctx context.Context) error {
	raw, err := m.fetchAdvisories(ctx)
	if err != nil {
		return err
	}

	processed, stats := hazard.Process(raw)
	m.metrics.AdvisoriesServed.Set(float64(len(processed)))
	m.metrics.AdvisoriesDropped.WithLabelValues("geometry").Add(float64(stats.DroppedGeometry))
	m.metrics.AdvisoriesDropped.WithLabelValues("expired").Add(float64(stats.DroppedExpired))

	// Stale-update guard, same as positions.
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.advisories.ReplaceAdvisories(ctx, processed); err != nil {
		return err
	}

	slog.Info("advisories refreshed",
		"advisories", len(processed),
		"dropped_geometry", stats.DroppedGeometry,
		"dropped_expired", stats.DroppedExpired)
	return nil
}

func (m *Manager) Stop() {
	m.wg.Wait()
	slog.Info("ingestion manager stopped")
}
