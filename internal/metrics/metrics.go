// Package metrics exposes the service's Prometheus metrics and the Echo
// middleware that records them.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	HelpRequestsStoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "help_requests_stored_total",
			Help: "Total number of help requests durably appended to the log",
		},
	)

	HelpRequestsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "help_requests_rejected_total",
			Help: "Total number of help requests rejected by payload validation",
		},
	)

	BlobOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blob_operation_duration_seconds",
			Help:    "Duration of blob store round-trips",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Register registers every metric with the default registry. Call once at
// startup.
func Register() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HelpRequestsStoredTotal,
		HelpRequestsRejectedTotal,
		BlobOperationDuration,
	)
}

// Middleware records request count and duration per route. The route
// template (not the raw URL) is used as the path label to keep cardinality
// bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			HTTPRequestDuration.WithLabelValues(path, c.Request().Method).Observe(time.Since(start).Seconds())
			HTTPRequestsTotal.WithLabelValues(path, c.Request().Method, strconv.Itoa(status)).Inc()
			return err
		}
	}
}
