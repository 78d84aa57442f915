package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "safe_gateway"

// hexSegment matches addresses and hashes in upstream paths
var hexSegment = regexp.MustCompile(`0x[0-9a-fA-F]+`)

// Metrics owns the gateway's Prometheus registry and collectors
type Metrics struct {
	registry *prometheus.Registry

	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	upstreamCounter  *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec

	verifications *prometheus.CounterVec
}

// New creates the collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"method", "route"}),
		upstreamCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tx_service",
			Name:      "requests_total",
			Help:      "Total number of requests sent to the transaction service",
		}, []string{"method", "path", "status"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tx_service",
			Name:      "request_duration_seconds",
			Help:      "Transaction service request duration in seconds, retries included",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		upstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tx_service",
			Name:      "request_errors_total",
			Help:      "Transaction service requests that failed or returned an error status",
		}, []string{"method", "path"}),
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "verifications_total",
			Help:      "Verifications by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency per route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requestCounter.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordVerification counts one verifier call
func (m *Metrics) RecordVerification(operation, outcome string) {
	m.verifications.WithLabelValues(operation, outcome).Inc()
}

// RecordRequestDuration implements the HTTP client's MetricsCollector
func (m *Metrics) RecordRequestDuration(method, path string, statusCode int, duration time.Duration) {
	m.upstreamDuration.WithLabelValues(method, normalizePath(path)).Observe(duration.Seconds())
}

// RecordRequestCount implements the HTTP client's MetricsCollector
func (m *Metrics) RecordRequestCount(method, path string, statusCode int) {
	m.upstreamCounter.WithLabelValues(method, normalizePath(path), strconv.Itoa(statusCode)).Inc()
}

// RecordRequestError implements the HTTP client's MetricsCollector
func (m *Metrics) RecordRequestError(method, path string) {
	m.upstreamErrors.WithLabelValues(method, normalizePath(path)).Inc()
}

// normalizePath drops query strings and replaces hex identifiers so label
// cardinality stays bounded
func normalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return hexSegment.ReplaceAllString(path, ":id")
}
