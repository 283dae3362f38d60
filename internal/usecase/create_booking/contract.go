package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
	"github.com/autotrack/garage-booking-service/internal/integrations/vehicleservice"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	CountOccupying(ctx context.Context, garageID int64, date time.Time, t types.TimeString) (int, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetWindowCovering(ctx context.Context, garageID int64, weekday int, t types.TimeString) (*domain.GarageAvailability, error)
}

// GarageServiceClient интерфейс клиента каталога гаражей и услуг
type GarageServiceClient interface {
	GetGarage(ctx context.Context, garageID int64) (*garageservice.Garage, error)
	GetService(ctx context.Context, garageID int64, serviceID uuid.UUID) (*garageservice.Service, error)
}

// VehicleServiceClient интерфейс клиента VehicleService
type VehicleServiceClient interface {
	GetUserVehicle(ctx context.Context, userID, vehicleID int64) (*vehicleservice.Vehicle, error)
}

// EventPublisher интерфейс публикации доменных событий.
// Публикация не блокирует запрос и не влияет на его исход.
type EventPublisher interface {
	PublishAsync(event domain.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
