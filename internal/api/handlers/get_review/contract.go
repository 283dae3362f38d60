package get_review

import (
	"context"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// ReviewsService интерфейс сервиса отзывов
type ReviewsService interface {
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingReview, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
