// Package metrics provides Prometheus metrics for the schedule service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Snapshot lifecycle
	rebuilds        prometheus.Counter
	rebuildFailures prometheus.Counter
	rebuildDuration prometheus.Histogram
	snapshotUnix    prometheus.Gauge

	// Snapshot contents
	eventsTotal  prometheus.Gauge
	playersTotal prometheus.Gauge

	// Ingestion quality
	rowsExcluded *prometheus.CounterVec
	fetchErrors  prometheus.Counter

	// Cache behavior
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	staleServes prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance on a custom registry, so the default
// Go collectors never collide with ours.
var globalManager *Manager                       //nolint:gochecknoglobals // singleton metrics manager
var customRegistry = prometheus.NewRegistry()    //nolint:gochecknoglobals // singleton metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "consched",
		subsystem:        "schedule",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuilds_total",
		Help:      "Total number of successful snapshot rebuilds",
	})
	m.rebuildFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuild_failures_total",
		Help:      "Total number of rebuild attempts that failed before publish",
	})
	m.rebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuild_duration_seconds",
		Help:      "Histogram of fetch+parse+index durations",
		Buckets:   m.histogramBuckets,
	})
	m.snapshotUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_generated_unix",
		Help:      "Unix time of the current snapshot's creation",
	})

	m.eventsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_total",
		Help:      "Number of events in the current snapshot",
	})
	m.playersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_total",
		Help:      "Number of distinct players in the current snapshot",
	})

	m.rowsExcluded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_excluded_total",
		Help:      "Sheet rows dropped during ingestion, by reason",
	}, []string{"reason"})
	m.fetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Failed sheet retrievals",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Snapshot reads served without a rebuild",
	})
	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Snapshot reads that found an absent or expired snapshot",
	})
	m.staleServes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stale_serves_total",
		Help:      "Reads served from a stale snapshot after a failed rebuild",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request durations by endpoint and method",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the registry metrics are exposed from.
func GetRegistry() *prometheus.Registry { return customRegistry }

// Package-level helpers recording on the global manager.

// RecordRebuild records a successful rebuild and its duration.
func RecordRebuild(d time.Duration) {
	globalManager.rebuilds.Inc()
	globalManager.rebuildDuration.Observe(d.Seconds())
	globalManager.snapshotUnix.SetToCurrentTime()
}

// RecordRebuildFailure records a rebuild that failed before publish.
func RecordRebuildFailure() { globalManager.rebuildFailures.Inc() }

// RecordRowExcluded records one dropped sheet row.
func RecordRowExcluded(reason string) {
	globalManager.rowsExcluded.WithLabelValues(reason).Inc()
}

// RecordFetchError records a failed sheet retrieval.
func RecordFetchError() { globalManager.fetchErrors.Inc() }

// RecordCacheHit records a read served from a fresh snapshot.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss records a read that triggered a rebuild attempt.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// RecordStaleServe records a stale snapshot served after a failure.
func RecordStaleServe() { globalManager.staleServes.Inc() }

// UpdateEventsTotal sets the current snapshot's event count.
func UpdateEventsTotal(n int) { globalManager.eventsTotal.Set(float64(n)) }

// UpdatePlayersTotal sets the current snapshot's player count.
func UpdatePlayersTotal(n int) { globalManager.playersTotal.Set(float64(n)) }

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records a request's duration in seconds.
func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}
