// Package metrics exposes Prometheus metrics for the HTTP server and the
// scan pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics holds the Prometheus collectors for the service.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	scansTotal       *prometheus.CounterVec
	parsedBillsTotal *prometheus.CounterVec
}

// NewHTTPServerMetrics creates and registers the service collectors on a
// fresh registry.
func NewHTTPServerMetrics() *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "billscan",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "billscan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "billscan",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		},
	)
	scansTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "billscan",
			Subsystem: "scan",
			Name:      "scans_total",
			Help:      "Total bill scans by engine and outcome.",
		},
		[]string{"engine", "status"},
	)
	parsedBillsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "billscan",
			Subsystem: "scan",
			Name:      "parsed_bills_total",
			Help:      "Total successfully parsed bills by document type.",
		},
		[]string{"document_type"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		scansTotal,
		parsedBillsTotal,
	)

	return &HTTPServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		scansTotal:       scansTotal,
		parsedBillsTotal: parsedBillsTotal,
	}
}

// Handler returns the /metrics scrape handler.
func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count, duration, and in-flight gauge per request.
func (m *HTTPServerMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// Route template, not the raw path, to bound label cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		c.Next()

		m.requestTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordScan counts one scan attempt.
func (m *HTTPServerMetrics) RecordScan(engine, status string) {
	m.scansTotal.WithLabelValues(engine, status).Inc()
}

// RecordParsedBill counts one successfully parsed bill.
func (m *HTTPServerMetrics) RecordParsedBill(documentType string) {
	m.parsedBillsTotal.WithLabelValues(documentType).Inc()
}
