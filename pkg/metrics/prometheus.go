// Package metrics provides Prometheus metrics for the courtside dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pass outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeDataSource = "data_source_error"
)

// Manager manages all Prometheus metrics for the dashboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Pass metrics
	passes        *prometheus.CounterVec
	passDuration  prometheus.Histogram
	recordsLoaded *prometheus.GaugeVec
	enriched      prometheus.Gauge
	filtered      prometheus.Gauge

	// Data source metrics
	queryLatency     *prometheus.HistogramVec
	dataSourceErrors *prometheus.CounterVec

	// Renderer metrics
	exports      *prometheus.CounterVec
	chartRenders *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "courtside",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
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
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.passes = auto.NewCounterVec(
		m.counterOpts("passes_total", "Total number of rendering passes by outcome"),
		[]string{"outcome"},
	)
	m.passDuration = auto.NewHistogram(
		m.histogramOpts("pass_duration_milliseconds", "Rendering pass duration in milliseconds (load plus recompute)", m.histogramBuckets),
	)
	m.recordsLoaded = auto.NewGaugeVec(
		m.gaugeOpts("records_loaded", "Number of rows loaded per source table in the last pass"),
		[]string{"table"},
	)
	m.enriched = auto.NewGauge(
		m.gaugeOpts("enriched_records", "Number of enriched records produced by the last join"),
	)
	m.filtered = auto.NewGauge(
		m.gaugeOpts("filtered_records", "Number of records matching the last filter criteria"),
	)

	m.queryLatency = auto.NewHistogramVec(
		m.histogramOpts("datasource_query_latency_milliseconds", "Data source query latency in milliseconds", m.histogramBuckets),
		[]string{"query"},
	)
	m.dataSourceErrors = auto.NewCounterVec(
		m.counterOpts("datasource_errors_total", "Total number of data source failures by operation"),
		[]string{"op"},
	)

	m.exports = auto.NewCounterVec(
		m.counterOpts("exports_total", "Total number of exports rendered by format"),
		[]string{"format"},
	)
	m.chartRenders = auto.NewCounterVec(
		m.counterOpts("chart_renders_total", "Total number of charts rendered by chart name"),
		[]string{"chart"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordPass records the outcome and duration of a rendering pass.
func RecordPass(outcome string, durationMs float64) {
	globalManager.passes.WithLabelValues(outcome).Inc()
	globalManager.passDuration.Observe(durationMs)
}

// UpdateRecordsLoaded sets the number of rows loaded from a source table.
func UpdateRecordsLoaded(table string, count int) {
	globalManager.recordsLoaded.WithLabelValues(table).Set(float64(count))
}

// UpdateEnrichedRecords sets the size of the last joined set.
func UpdateEnrichedRecords(count int) {
	globalManager.enriched.Set(float64(count))
}

// UpdateFilteredRecords sets the size of the last filtered set.
func UpdateFilteredRecords(count int) {
	globalManager.filtered.Set(float64(count))
}

// RecordQueryLatency records data source query latency.
func RecordQueryLatency(query string, latencyMs float64) {
	globalManager.queryLatency.WithLabelValues(query).Observe(latencyMs)
}

// RecordDataSourceError increments the data source error counter for op.
func RecordDataSourceError(op string) {
	globalManager.dataSourceErrors.WithLabelValues(op).Inc()
}

// RecordExport increments the export counter for a format (csv, xlsx).
func RecordExport(format string) {
	globalManager.exports.WithLabelValues(format).Inc()
}

// RecordChartRender increments the chart render counter.
func RecordChartRender(chart string) {
	globalManager.chartRenders.WithLabelValues(chart).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
