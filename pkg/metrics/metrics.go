package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus collectors of the service.
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	BookingOutcomes     *prometheus.CounterVec
	RemindersDispatched *prometheus.CounterVec
}

// New registers collectors in the default Prometheus registry (served by promhttp.Handler).
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry registers collectors in reg. Tests pass a fresh prometheus.NewRegistry().
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		service: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state.",
		}, []string{"service", "state"}),

		BookingOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_attempts_total",
			Help: "Booking attempts by outcome.",
		}, []string{"service", "outcome"}),

		RemindersDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reminders_dispatched_total",
			Help: "Reminders marked as dispatched by channel.",
		}, []string{"service", "channel"}),
	}
}

// ServiceName returns the value of the "service" label.
func (m *Metrics) ServiceName() string {
	return m.service
}

// RecordBookingOutcome increments the booking outcome counter.
func (m *Metrics) RecordBookingOutcome(outcome string) {
	m.BookingOutcomes.WithLabelValues(m.service, outcome).Inc()
}

// RecordReminderDispatched increments the dispatched reminders counter.
func (m *Metrics) RecordReminderDispatched(channel string) {
	m.RemindersDispatched.WithLabelValues(m.service, channel).Inc()
}
