package service

import (
	"database/sql"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Domain events counted by MetricsService.
const (
	EventCheckIn          = "attendance_checkin"
	EventCheckOut         = "attendance_checkout"
	EventRegistration     = "user_registered"
	EventLoginFailed      = "login_failed"
	EventEnrollmentCreate = "enrollment_created"
	EventContactSubmitted = "contact_submitted"
	EventUploadStored     = "upload_stored"
	EventReportExported   = "report_exported"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	events          *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
}

// NewMetricsService registers core collectors. When stats is non-nil the connection pool is exported too.
func NewMetricsService(stats func() sql.DBStats) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "daycare_events_total",
		Help: "Domain events by type",
	}, []string{"event"})

	rateLimited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_requests_total",
		Help: "Requests rejected by the rate limiter",
	}, []string{"scope"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, events, rateLimited, goroutines)
	if stats != nil {
		registry.MustRegister(newPoolCollector(stats))
	}
	registry.MustRegister(collectors.NewGoCollector())

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		events:          events,
		rateLimited:     rateLimited,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordEvent increments the counter of a domain event.
func (m *MetricsService) RecordEvent(event string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(event).Inc()
}

// RecordRateLimited counts a rejected request for the limiter scope.
func (m *MetricsService) RecordRateLimited(scope string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(scope).Inc()
}

type poolCollector struct {
	stats    func() sql.DBStats
	open     *prometheus.Desc
	inUse    *prometheus.Desc
	idle     *prometheus.Desc
	waitTime *prometheus.Desc
}

func newPoolCollector(stats func() sql.DBStats) *poolCollector {
	return &poolCollector{
		stats:    stats,
		open:     prometheus.NewDesc("db_pool_open_connections", "Open connections in the pool", nil, nil),
		inUse:    prometheus.NewDesc("db_pool_in_use_connections", "Connections currently in use", nil, nil),
		idle:     prometheus.NewDesc("db_pool_idle_connections", "Idle connections", nil, nil),
		waitTime: prometheus.NewDesc("db_pool_wait_seconds_total", "Total time blocked waiting for a connection", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.open
	ch <- c.inUse
	ch <- c.idle
	ch <- c.waitTime
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.open, prometheus.GaugeValue, float64(s.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(s.InUse))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.Idle))
	ch <- prometheus.MustNewConstMetric(c.waitTime, prometheus.CounterValue, s.WaitDuration.Seconds())
}
