package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// External API metrics (quote history, symbol search)
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// Resolver metrics
	ResolutionsTotal *prometheus.CounterVec

	// Dashboard metrics
	RatingsTotal       *prometheus.CounterVec
	PrunedEntriesTotal prometheus.Counter
	HistoryCacheHits   prometheus.Counter
	HistoryCacheMisses prometheus.Counter

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the histogram buckets for duration metrics (seconds).
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stockup",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of upstream quote/search requests",
			},
			[]string{"service", "operation"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of upstream quote/search errors",
			},
			[]string{"service", "operation", "error_type"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stockup",
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of upstream calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "resolver",
				Name:      "resolutions_total",
				Help:      "Ticker resolutions by strategy layer and outcome",
			},
			[]string{"layer", "outcome"},
		),
		RatingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "dashboard",
				Name:      "ratings_total",
				Help:      "Assembled rows by rating style class",
			},
			[]string{"rating"},
		),
		PrunedEntriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "dashboard",
				Name:      "pruned_entries_total",
				Help:      "Watchlist entries removed for lacking history",
			},
		),
		HistoryCacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "dashboard",
				Name:      "history_cache_hits_total",
				Help:      "Batch history fetches served from the TTL cache",
			},
		),
		HistoryCacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "dashboard",
				Name:      "history_cache_misses_total",
				Help:      "Batch history fetches that went upstream",
			},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "stockup",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockup",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}
}

// InitMetrics initializes the global metrics instance.
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance.
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordExternalAPIRequest records an upstream request.
func (m *Metrics) RecordExternalAPIRequest(service, operation string) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service, operation).Inc()
}

// RecordExternalAPIError records an upstream error.
func (m *Metrics) RecordExternalAPIError(service, operation, errorType string) {
	m.ExternalAPIErrorsTotal.WithLabelValues(service, operation, errorType).Inc()
}

// RecordExternalAPIDuration records the duration of an upstream call.
func (m *Metrics) RecordExternalAPIDuration(service, operation string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordResolution records a ticker resolution attempt by layer and outcome.
func (m *Metrics) RecordResolution(layer, outcome string) {
	m.ResolutionsTotal.WithLabelValues(layer, outcome).Inc()
}

// RecordRating records one assembled row by rating style class.
func (m *Metrics) RecordRating(styleClass string) {
	m.RatingsTotal.WithLabelValues(styleClass).Inc()
}

// RecordPrunedEntries records watchlist entries removed during assembly.
func (m *Metrics) RecordPrunedEntries(n int) {
	m.PrunedEntriesTotal.Add(float64(n))
}

// RecordCacheHit records a history cache hit.
func (m *Metrics) RecordCacheHit() { m.HistoryCacheHits.Inc() }

// RecordCacheMiss records a history cache miss.
func (m *Metrics) RecordCacheMiss() { m.HistoryCacheMisses.Inc() }

// SetCircuitBreakerState sets the current state of a circuit breaker.
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip.
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

// Timer is a helper for timing operations.
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer.
func (m *Metrics) NewTimer() *Timer {
	return &Timer{start: time.Now(), metrics: m}
}

// ObserveExternalAPI records the upstream call duration.
func (t *Timer) ObserveExternalAPI(service, operation string) {
	t.metrics.RecordExternalAPIDuration(service, operation, time.Since(t.start))
}

// Duration returns the elapsed time.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
