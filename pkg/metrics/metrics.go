package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Бизнес-метрики бронирований
	BookingsCreated    *prometheus.CounterVec
	BookingsCancelled  *prometheus.CounterVec
	SlotFullRejections *prometheus.CounterVec
	RemindersSent      prometheus.Counter
}

// IncBookingsCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncBookingsCreated(garageID int64) {
	m.BookingsCreated.WithLabelValues(strconv.FormatInt(garageID, 10)).Inc()
}

// IncBookingsCancelled увеличивает счетчик отмененных бронирований
func (m *Metrics) IncBookingsCancelled(garageID int64) {
	m.BookingsCancelled.WithLabelValues(strconv.FormatInt(garageID, 10)).Inc()
}

// IncSlotFullRejections увеличивает счетчик отказов из-за заполненного слота
func (m *Metrics) IncSlotFullRejections(garageID int64) {
	m.SlotFullRejections.WithLabelValues(strconv.FormatInt(garageID, 10)).Inc()
}

// IncRemindersSent увеличивает счетчик отправленных напоминаний
func (m *Metrics) IncRemindersSent() {
	m.RemindersSent.Inc()
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: constLabels,
		}, []string{"garage_id"}),

		BookingsCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of bookings cancelled",
			ConstLabels: constLabels,
		}, []string{"garage_id"}),

		SlotFullRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_slot_full_rejections_total",
			Help:        "Booking attempts rejected because the slot was full",
			ConstLabels: constLabels,
		}, []string{"garage_id"}),

		RemindersSent: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_reminders_sent_total",
			Help:        "Total number of booking reminders dispatched",
			ConstLabels: constLabels,
		}),
	}
}
