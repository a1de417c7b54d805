// Package metrics provides Prometheus metrics for the varsity valuation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Valuation metrics
	valuationsComputed *prometheus.CounterVec
	valuationErrors    *prometheus.CounterVec
	valuationLatency   prometheus.Histogram
	warDistribution    prometheus.Histogram
	combinedValue      prometheus.Histogram
	undefinedPositions prometheus.Counter
	valuationWarnings  prometheus.Counter
	batchSize          prometheus.Histogram
	referenceReloads   *prometheus.CounterVec

	// Operational health
	jobsDuplicate prometheus.Counter
	workerCount   prometheus.Gauge
	storeRecords  prometheus.Gauge
	storeShards   prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "varsity",
		subsystem:        "valuation",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	m.valuationsComputed = m.counterVec("valuations_computed_total",
		"Total number of valuations computed", "sport")
	m.valuationErrors = m.counterVec("valuation_errors_total",
		"Total number of failed valuations by error kind", "kind")
	m.valuationLatency = m.histogram("valuation_latency_milliseconds",
		"Time to compute one valuation in milliseconds", m.histogramBuckets)
	m.warDistribution = m.histogram("war",
		"Distribution of computed WAR values", []float64{-1, -0.5, 0, 0.5, 1, 1.5, 2, 3, 4})
	m.combinedValue = m.histogram("combined_value_dollars",
		"Distribution of combined valuations in dollars", prometheus.ExponentialBuckets(5000, 2, 12))
	m.undefinedPositions = m.counter("undefined_position_total",
		"Valuations that fell back to the neutral score for an unknown position")
	m.valuationWarnings = m.counter("valuation_warnings_total",
		"Total number of warnings attached to valuations")
	m.batchSize = m.histogram("batch_size",
		"Number of athletes per synchronous batch", prometheus.ExponentialBuckets(1, 2, 10))
	m.referenceReloads = m.counterVec("reference_reloads_total",
		"Reference table reloads by result", "result")

	m.jobsDuplicate = m.counter("jobs_duplicate_total",
		"Total number of duplicate submissions detected")
	m.workerCount = m.gauge("worker_count",
		"Current number of valuation workers")
	m.storeRecords = m.gauge("store_records_total",
		"Number of stored valuations")
	m.storeShards = m.gauge("store_shard_count",
		"Number of store shards")

	m.queueSize = m.gauge("queue_size",
		"Current size of the job queue (backlog indicator)")
	m.queueCapacity = m.gauge("queue_capacity",
		"Maximum queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio",
		"Queue utilization ratio (current size / capacity)")
	m.queueEnqueued = m.counter("queue_enqueue_total",
		"Total number of jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total",
		"Total number of jobs dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total",
		"Total number of rejected enqueues")

	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds",
		"Worker processing latency in milliseconds", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total",
		"Total number of worker errors")

	auto := promauto.With(m.registry)
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes",
		"System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count",
		"Number of goroutines")
}

// RecordValuation records one successful valuation.
func RecordValuation(sport string, latencyMs, war, combined float64, warnings int) {
	globalManager.valuationsComputed.WithLabelValues(sport).Inc()
	globalManager.valuationLatency.Observe(latencyMs)
	globalManager.warDistribution.Observe(war)
	globalManager.combinedValue.Observe(combined)
	globalManager.valuationWarnings.Add(float64(warnings))
}

// RecordValuationError increments failed valuations for kind.
func RecordValuationError(kind string) {
	globalManager.valuationErrors.WithLabelValues(kind).Inc()
}

// RecordUndefinedPosition counts a neutral-score fallback.
func RecordUndefinedPosition() {
	globalManager.undefinedPositions.Inc()
}

// RecordBatchSize observes the size of a synchronous batch.
func RecordBatchSize(n int) {
	globalManager.batchSize.Observe(float64(n))
}

// RecordReferenceReload counts a reload attempt; result is "ok" or "error".
func RecordReferenceReload(result string) {
	globalManager.referenceReloads.WithLabelValues(result).Inc()
}

// RecordJobDuplicate increments the duplicate submissions counter.
func RecordJobDuplicate() {
	globalManager.jobsDuplicate.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateStoreRecords sets the number of stored valuations.
func UpdateStoreRecords(count int) {
	globalManager.storeRecords.Set(float64(count))
}

// UpdateStoreShards sets the number of store shards.
func UpdateStoreShards(count int) {
	globalManager.storeShards.Set(float64(count))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
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

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
