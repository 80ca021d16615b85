// Package observability exposes the Prometheus metrics of the API.
package observability

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const namespace = "expense_tracker"

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	Registry *prometheus.Registry

	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	dbQueryDuration    *prometheus.HistogramVec
	dbQueryTimeouts    *prometheus.CounterVec
	rateLimitRejection *prometheus.CounterVec
}

// NewMetrics creates a dedicated registry so tests can build several servers
// in one process without duplicate registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method, route and status.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		dbQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query latency by operation.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
		dbQueryTimeouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_query_timeouts_total",
				Help:      "Database queries cancelled by the per-query deadline.",
			},
			[]string{"operation"},
		),
		rateLimitRejection: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_rejections_total",
				Help:      "Requests rejected by the rate limiter.",
			},
			[]string{"route"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveHTTPRequest records one finished HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, code).Inc()
	m.httpDuration.WithLabelValues(method, route, code).Observe(d.Seconds())
}

// ObserveQuery records the latency of one database operation.
func (m *Metrics) ObserveQuery(operation string, d time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrQueryTimeout counts a query that hit its deadline.
func (m *Metrics) IncrQueryTimeout(operation string) {
	m.dbQueryTimeouts.WithLabelValues(operation).Inc()
}

// IncrRateLimitRejection counts a request rejected by the rate limiter.
func (m *Metrics) IncrRateLimitRejection(route string) {
	m.rateLimitRejection.WithLabelValues(route).Inc()
}

const startedAtKey = "observability:started_at"

// InstrumentGorm registers callbacks that time every gorm operation.
func (m *Metrics) InstrumentGorm(db *gorm.DB) error {
	type hook struct {
		operation string
		before    func(name string, fn func(*gorm.DB)) error
		after     func(name string, fn func(*gorm.DB)) error
	}

	cb := db.Callback()
	hooks := []hook{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		operation := h.operation
		if err := h.before("metrics:before_"+operation, func(tx *gorm.DB) {
			tx.InstanceSet(startedAtKey, time.Now())
		}); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+operation, func(tx *gorm.DB) {
			m.afterQuery(tx, operation)
		}); err != nil {
			return err
		}
	}

	return nil
}

func (m *Metrics) afterQuery(tx *gorm.DB, operation string) {
	if v, ok := tx.InstanceGet(startedAtKey); ok {
		if startedAt, ok := v.(time.Time); ok {
			m.ObserveQuery(operation, time.Since(startedAt))
		}
	}
	if tx.Error != nil && errors.Is(tx.Error, context.DeadlineExceeded) {
		m.IncrQueryTimeout(operation)
	}
}
