package cancel_booking

import (
	"context"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/service/bookings/models"
)

// BookingsService интерфейс сервиса бронирований
type BookingsService interface {
	Cancel(ctx context.Context, req *models.CancelBookingRequest) (*domain.Booking, error)
}

// Metrics интерфейс бизнес-метрик бронирований
type Metrics interface {
	IncBookingsCancelled(garageID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
