package list_availability

import (
	"context"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	ListByGarage(ctx context.Context, garageID int64) ([]*domain.GarageAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
