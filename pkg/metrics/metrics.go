// Package metrics - prometheus метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Планирование
	SchedulingOperationsTotal *prometheus.CounterVec
	SlotsOffered              *prometheus.HistogramVec
	CalendarSyncFailuresTotal *prometheus.CounterVec
	CascadeFailuresTotal      *prometheus.CounterVec
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SchedulingOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_operations_total",
			Help:        "Booking orchestrator operations by outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		SlotsOffered: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "scheduling_slots_offered",
			Help:        "Number of slots returned per availability request",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32},
		}, []string{"service_id"}),
		CalendarSyncFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_sync_failures_total",
			Help:        "External calendar failures absorbed by the orchestrator",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		CascadeFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cascade_delete_failures_total",
			Help:        "Dependent records that failed to delete during cancellation",
			ConstLabels: constLabels,
		}, []string{"target"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.SchedulingOperationsTotal,
		m.SlotsOffered,
		m.CalendarSyncFailuresTotal,
		m.CascadeFailuresTotal,
	)

	return m
}

// ObserveOperation увеличивает счетчик операций оркестратора. Безопасен для nil.
func (m *Metrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.SchedulingOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveCalendarFailure увеличивает счетчик сбоев внешнего календаря. Безопасен для nil.
func (m *Metrics) ObserveCalendarFailure(operation string) {
	if m == nil {
		return
	}
	m.CalendarSyncFailuresTotal.WithLabelValues(operation).Inc()
}

// ObserveCascadeFailure увеличивает счетчик неудачных каскадных удалений. Безопасен для nil.
func (m *Metrics) ObserveCascadeFailure(target string) {
	if m == nil {
		return
	}
	m.CascadeFailuresTotal.WithLabelValues(target).Inc()
}

// ObserveSlotsOffered фиксирует количество отданных слотов. Безопасен для nil.
func (m *Metrics) ObserveSlotsOffered(serviceID string, count int) {
	if m == nil {
		return
	}
	m.SlotsOffered.WithLabelValues(serviceID).Observe(float64(count))
}
