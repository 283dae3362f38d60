package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// BookingsService интерфейс сервиса бронирований
type BookingsService interface {
	ListDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, bookingID uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
