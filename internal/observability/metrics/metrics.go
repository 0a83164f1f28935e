// Package metrics exposes Prometheus instruments for the HTTP surface and
// the auth flows.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures metric registration.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics holds the registry and application instruments.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	authAttempts *prometheus.CounterVec
	emailsSent   *prometheus.CounterVec
	rateLimited  *prometheus.CounterVec
}

// New builds the registry with process, Go runtime, and application
// collectors registered.
func New(cfg Config) (*Metrics, error) {
	registry := prometheus.NewRegistry()

	constLabels := prometheus.Labels{
		"service": strings.TrimSpace(cfg.ServiceName),
		"env":     strings.TrimSpace(cfg.Environment),
	}

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "skillshare_http_requests_total",
			Help:        "Inbound HTTP requests by method, route, and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "skillshare_http_request_duration_seconds",
			Help:        "Inbound HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "skillshare_auth_attempts_total",
			Help:        "Authentication attempts by operation and outcome.",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "skillshare_emails_sent_total",
			Help:        "Outbound emails by template and outcome.",
			ConstLabels: constLabels,
		}, []string{"template", "outcome"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "skillshare_rate_limited_total",
			Help:        "Requests rejected by the rate limiter, by route.",
			ConstLabels: constLabels,
		}, []string{"route"}),
	}

	for _, collector := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.authAttempts,
		m.emailsSent,
		m.rateLimited,
	} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Handler serves the scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.httpRequests.WithLabelValues(method, route, status).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordAuthAttempt counts an auth operation outcome.
func (m *Metrics) RecordAuthAttempt(operation, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(operation, outcome).Inc()
}

// RecordEmail counts an outbound email outcome.
func (m *Metrics) RecordEmail(template, outcome string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(template, outcome).Inc()
}

// RecordRateLimited counts a rejected request.
func (m *Metrics) RecordRateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}
