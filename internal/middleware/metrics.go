package middleware

import (
	"strconv"
	"time"

	"github.com/kestrelworks/gatehouse"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Upload decision metrics
	uploadValidationsTotal *prometheus.CounterVec
	uploadStoredBytesTotal *prometheus.CounterVec
)

// InitMetrics registers all Prometheus collectors. Call once during startup,
// before MetricsMiddleware.
func InitMetrics() {
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	uploadValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_validations_total",
			Help: "Upload validation decisions by result and rejection reason",
		},
		[]string{"result", "reason"},
	)

	uploadStoredBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_stored_bytes_total",
			Help: "Bytes accepted into storage by media type",
		},
		[]string{"type"},
	)
}

// MetricsMiddleware records request count, latency and in-flight gauge for
// every route except /metrics itself.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if httpRequestsTotal == nil || c.Path() == "/metrics" {
				return next(c)
			}

			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordUploadValidation counts one validation decision.
func RecordUploadValidation(outcome gatehouse.ValidationOutcome) {
	if uploadValidationsTotal == nil {
		return
	}
	if outcome.Accepted {
		uploadValidationsTotal.WithLabelValues("accepted", "").Inc()
		return
	}
	uploadValidationsTotal.WithLabelValues("rejected", string(outcome.Reason)).Inc()
}

// RecordUploadStored counts bytes accepted into storage.
func RecordUploadStored(t gatehouse.MediaType, size int64) {
	if uploadStoredBytesTotal == nil {
		return
	}
	uploadStoredBytesTotal.WithLabelValues(string(t)).Add(float64(size))
}
