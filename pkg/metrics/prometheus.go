// Package metrics provides Prometheus metrics for the draftkit service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the draftkit service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Catalog
	catalogSize       prometheus.Gauge
	repositoryLatency *prometheus.HistogramVec
	recordsLoaded     *prometheus.CounterVec
	recordsSkipped    *prometheus.CounterVec

	// Lookup and roster
	lookupOutcomes  *prometheus.CounterVec
	rosterMutations *prometheus.CounterVec
	rosterSize      prometheus.Gauge
	rosterSpent     prometheus.Gauge
	rosterRemaining prometheus.Gauge

	// Optimizer
	solveTotal      *prometheus.CounterVec
	solveLatency    prometheus.Histogram
	solveTableCells prometheus.Histogram
	solvePoints     prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "draftkit",
		subsystem:        "roster",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.catalogSize = auto.NewGauge(m.gaugeOpts("catalog_size",
		"Number of athletes currently available in the catalog"))
	m.repositoryLatency = auto.NewHistogramVec(m.histogramOpts("repository_latency_milliseconds",
		"Catalog operation latency in milliseconds", m.histogramBuckets), []string{"operation"})
	m.recordsLoaded = auto.NewCounterVec(m.counterOpts("records_loaded_total",
		"Athletes loaded into the catalog by category"), []string{"category"})
	m.recordsSkipped = auto.NewCounterVec(m.counterOpts("records_skipped_total",
		"Input records skipped during load by category and reason"), []string{"category", "reason"})

	m.lookupOutcomes = auto.NewCounterVec(m.counterOpts("lookup_total",
		"Name lookups by outcome kind"), []string{"kind"})
	m.rosterMutations = auto.NewCounterVec(m.counterOpts("mutations_total",
		"Roster add/remove requests by operation and outcome"), []string{"operation", "outcome"})
	m.rosterSize = auto.NewGauge(m.gaugeOpts("size", "Number of committed picks"))
	m.rosterSpent = auto.NewGauge(m.gaugeOpts("spent", "Sum of prices paid for committed picks"))
	m.rosterRemaining = auto.NewGauge(m.gaugeOpts("remaining_budget",
		"Budget left in the ledger (never refunded on remove)"))

	m.solveTotal = auto.NewCounterVec(m.counterOpts("solve_total",
		"Optimizer runs by outcome"), []string{"outcome"})
	m.solveLatency = auto.NewHistogram(m.histogramOpts("solve_latency_milliseconds",
		"Optimizer run latency in milliseconds", m.histogramBuckets))
	m.solveTableCells = auto.NewHistogram(m.histogramOpts("solve_table_cells",
		"Size of the selection table per run (athletes x budget levels)",
		prometheus.ExponentialBuckets(100, 10, 7)))
	m.solvePoints = auto.NewGauge(m.gaugeOpts("best_team_points",
		"Projected points of the last computed best team"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total",
		"Total number of errors by component"), []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"})
}

// Catalog metrics.

// UpdateCatalogSize sets the number of athletes in the catalog.
func UpdateCatalogSize(n int) {
	globalManager.catalogSize.Set(float64(n))
}

// RecordRepositoryLatency records the latency of a catalog operation.
func RecordRepositoryLatency(operation string, latencyMs float64) {
	globalManager.repositoryLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordRecordsLoaded adds n to the loaded counter of a category.
func RecordRecordsLoaded(category string, n int) {
	globalManager.recordsLoaded.WithLabelValues(category).Add(float64(n))
}

// RecordRecordSkipped counts one skipped input record.
func RecordRecordSkipped(category, reason string) {
	globalManager.recordsSkipped.WithLabelValues(category, reason).Inc()
}

// Lookup and roster metrics.

// RecordLookup counts a lookup by outcome kind.
func RecordLookup(kind string) {
	globalManager.lookupOutcomes.WithLabelValues(kind).Inc()
}

// RecordRosterMutation counts an add or remove by outcome.
func RecordRosterMutation(operation, outcome string) {
	globalManager.rosterMutations.WithLabelValues(operation, outcome).Inc()
}

// UpdateRoster sets the roster gauges.
func UpdateRoster(size int, spent, remaining float64) {
	globalManager.rosterSize.Set(float64(size))
	globalManager.rosterSpent.Set(spent)
	globalManager.rosterRemaining.Set(remaining)
}

// Optimizer metrics.

// RecordSolve records one optimizer run.
func RecordSolve(outcome string, latencyMs float64, cells int64) {
	globalManager.solveTotal.WithLabelValues(outcome).Inc()
	globalManager.solveLatency.Observe(latencyMs)
	if cells > 0 {
		globalManager.solveTableCells.Observe(float64(cells))
	}
}

// UpdateBestTeamPoints sets the points of the last computed best team.
func UpdateBestTeamPoints(points float64) {
	globalManager.solvePoints.Set(points)
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
