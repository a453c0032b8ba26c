package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках сервисы получают nil
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	ReservationTransitions *prometheus.CounterVec
	RecurrenceOccurrences  *prometheus.CounterVec
	EventsEmitted          *prometheus.CounterVec
	EventsEmitFailed       *prometheus.CounterVec
}

// New создает и регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает и регистрирует метрики в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries.",
		}, []string{"service", "operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections to the database.",
		}, []string{"service"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use.",
		}, []string{"service"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections.",
		}, []string{"service"}),

		ReservationTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_transitions_total",
			Help: "Reservation lifecycle transitions, labeled by target status.",
		}, []string{"service", "to"}),

		RecurrenceOccurrences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_recurrence_occurrences_total",
			Help: "Recurring reservation occurrences, labeled by result (created, skipped).",
		}, []string{"service", "result"}),

		EventsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_events_emitted_total",
			Help: "Reservation events handed to the notification sink.",
		}, []string{"service", "type"}),

		EventsEmitFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_events_emit_failed_total",
			Help: "Reservation events the notification sink rejected.",
		}, []string{"service", "type"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.ReservationTransitions,
		m.RecurrenceOccurrences,
		m.EventsEmitted,
		m.EventsEmitFailed,
	)

	return m
}

// ServiceName имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// IncTransition учитывает переход бронирования в статус to
func (m *Metrics) IncTransition(to string) {
	if m == nil {
		return
	}
	m.ReservationTransitions.WithLabelValues(m.serviceName, to).Inc()
}

// AddOccurrences учитывает результат разворачивания повторяющегося бронирования
func (m *Metrics) AddOccurrences(created, skipped int) {
	if m == nil {
		return
	}
	m.RecurrenceOccurrences.WithLabelValues(m.serviceName, "created").Add(float64(created))
	m.RecurrenceOccurrences.WithLabelValues(m.serviceName, "skipped").Add(float64(skipped))
}

// IncEventEmitted учитывает успешно отправленное событие
func (m *Metrics) IncEventEmitted(eventType string) {
	if m == nil {
		return
	}
	m.EventsEmitted.WithLabelValues(m.serviceName, eventType).Inc()
}

// IncEventFailed учитывает событие, которое не удалось отправить
func (m *Metrics) IncEventFailed(eventType string) {
	if m == nil {
		return
	}
	m.EventsEmitFailed.WithLabelValues(m.serviceName, eventType).Inc()
}
