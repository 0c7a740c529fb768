// Package metrics provides Prometheus metrics for the skilltree engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Award metrics
	awardsTotal    prometheus.Counter
	awardErrors    prometheus.Counter
	levelUpsTotal  prometheus.Counter
	penaltiesTotal prometheus.Counter

	// Graph metrics
	skillsTotal     prometheus.Gauge
	graphExperience prometheus.Gauge

	// Latency metrics
	aggregationLatency prometheus.Histogram
	exportLatency      prometheus.Histogram
	refreshLatency     prometheus.Histogram

	// Persistence metrics
	recordsLoaded  prometheus.Counter
	recordsSkipped prometheus.Counter
	recordsSaved   prometheus.Counter

	// Refresh loop metrics
	refreshTicks   prometheus.Counter
	refreshSkipped prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skilltree",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.awardsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "awards_total",
		Help:      "Total number of experience awards applied",
	})

	m.awardErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "award_errors_total",
		Help:      "Total number of per-skill award failures",
	})

	m.levelUpsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "level_ups_total",
		Help:      "Total number of level boundaries crossed by awards",
	})

	m.penaltiesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "penalties_total",
		Help:      "Total number of awards reduced by the deadline penalty",
	})

	m.skillsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "skills_total",
		Help:      "Number of skills in the graph",
	})

	m.graphExperience = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "graph_experience",
		Help:      "Graph-wide raw experience",
	})

	m.aggregationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_latency_milliseconds",
		Help:      "Histogram of total-experience aggregation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.exportLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_latency_milliseconds",
		Help:      "Histogram of graph export latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.refreshLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_latency_milliseconds",
		Help:      "Histogram of display refresh latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recordsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_loaded_total",
		Help:      "Total number of skill records loaded from the graph file",
	})

	m.recordsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_skipped_total",
		Help:      "Total number of malformed skill records skipped on load",
	})

	m.recordsSaved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_saved_total",
		Help:      "Total number of skill records written to the graph file",
	})

	m.refreshTicks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_ticks_total",
		Help:      "Total number of display refresh ticks run",
	})

	m.refreshSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_ticks_skipped_total",
		Help:      "Total number of refresh ticks skipped because one was in flight",
	})
}

// Package-level helpers recording on the global manager.

// RecordAward increments the award counter.
func RecordAward() {
	if globalManager.enabled {
		globalManager.awardsTotal.Inc()
	}
}

// RecordAwardError increments the per-skill award failure counter.
func RecordAwardError() {
	if globalManager.enabled {
		globalManager.awardErrors.Inc()
	}
}

// RecordLevelUp increments the level-up counter.
func RecordLevelUp() {
	if globalManager.enabled {
		globalManager.levelUpsTotal.Inc()
	}
}

// RecordPenalty increments the penalty counter.
func RecordPenalty() {
	if globalManager.enabled {
		globalManager.penaltiesTotal.Inc()
	}
}

// UpdateSkillCount sets the skill count gauge.
func UpdateSkillCount(count int) {
	if globalManager.enabled {
		globalManager.skillsTotal.Set(float64(count))
	}
}

// UpdateGraphExperience sets the graph-wide raw experience gauge.
func UpdateGraphExperience(total int) {
	if globalManager.enabled {
		globalManager.graphExperience.Set(float64(total))
	}
}

// RecordAggregationLatency observes one aggregation duration in milliseconds.
func RecordAggregationLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.aggregationLatency.Observe(latencyMs)
	}
}

// RecordExportLatency observes one export duration in milliseconds.
func RecordExportLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.exportLatency.Observe(latencyMs)
	}
}

// RecordRefreshLatency observes one refresh duration in milliseconds.
func RecordRefreshLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.refreshLatency.Observe(latencyMs)
	}
}

// RecordRecordsLoaded adds to the loaded-record counter.
func RecordRecordsLoaded(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.recordsLoaded.Add(float64(n))
	}
}

// RecordRecordsSkipped adds to the skipped-record counter.
func RecordRecordsSkipped(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.recordsSkipped.Add(float64(n))
	}
}

// RecordRecordsSaved adds to the saved-record counter.
func RecordRecordsSaved(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.recordsSaved.Add(float64(n))
	}
}

// RecordRefreshTick increments the refresh tick counter.
func RecordRefreshTick() {
	if globalManager.enabled {
		globalManager.refreshTicks.Inc()
	}
}

// RecordRefreshSkipped increments the skipped-tick counter.
func RecordRefreshSkipped() {
	if globalManager.enabled {
		globalManager.refreshSkipped.Inc()
	}
}

// GetRegistry returns the custom registry serving /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
