package create_review

import (
	"context"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/service/reviews"
)

// ReviewsService интерфейс сервиса отзывов
type ReviewsService interface {
	Create(ctx context.Context, req *reviews.CreateReviewRequest) (*domain.BookingReview, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
