package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter, now time.Time) ([]*domain.Booking, error)
	UpdateLifecycle(ctx context.Context, b *domain.Booking, fromStatus domain.BookingStatus) error
	ListDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}

// GarageServiceClient интерфейс клиента каталога гаражей
type GarageServiceClient interface {
	GetGarage(ctx context.Context, garageID int64) (*garageservice.Garage, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	PublishAsync(event domain.BookingEvent)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
