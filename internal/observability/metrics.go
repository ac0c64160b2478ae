package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the refresh pipeline.
type Metrics struct {
	SnapshotsFetched *prometheus.CounterVec // labels: outcome={success,error,malformed}
	PositionsMerged  prometheus.Gauge
	ElementsSkipped  prometheus.Counter

	AdvisoriesServed  prometheus.Gauge
	AdvisoriesDropped *prometheus.CounterVec // labels: reason={geometry,expired}

	RefreshDuration *prometheus.HistogramVec // labels: feed={positions,advisories}
	LastRefresh     *prometheus.GaugeVec     // labels: feed={positions,advisories}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SnapshotsFetched,
		m.PositionsMerged,
		m.ElementsSkipped,
		m.AdvisoriesServed,
		m.AdvisoriesDropped,
		m.RefreshDuration,
		m.LastRefresh,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests do not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SnapshotsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "balloon_watch",
			Name:      "snapshots_fetched_total",
			Help:      "Hourly snapshot fetches by outcome.",
		}, []string{"outcome"}),
		PositionsMerged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "balloon_watch",
			Name:      "positions_merged",
			Help:      "Positions in the latest merged set.",
		}),
		ElementsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "balloon_watch",
			Name:      "elements_skipped_total",
			Help:      "Feed elements rejected during extraction.",
		}),
		AdvisoriesServed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "balloon_watch",
			Name:      "advisories_served",
			Help:      "Advisories in the latest classified set.",
		}),
		AdvisoriesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "balloon_watch",
			Name:      "advisories_dropped_total",
			Help:      "Advisories excluded before ranking, by reason.",
		}, []string{"reason"}),
		RefreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "balloon_watch",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-derive-store cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"feed"}),
		LastRefresh: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "balloon_watch",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful refresh.",
		}, []string{"feed"}),
	}
}
