package complete_booking

import (
	"context"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/service/bookings/models"
)

// BookingsService интерфейс сервиса бронирований
type BookingsService interface {
	Complete(ctx context.Context, req *models.CompleteBookingRequest) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
