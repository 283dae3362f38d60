package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.BookingReview) (*domain.BookingReview, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingReview, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
