package stats

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter, now time.Time) ([]*domain.Booking, error)
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	ListByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) ([]*domain.BookingReview, error)
}

// GarageServiceClient интерфейс клиента каталога гаражей
type GarageServiceClient interface {
	GetGarage(ctx context.Context, garageID int64) (*garageservice.Garage, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
