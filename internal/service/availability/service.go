package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListByGarage(ctx context.Context, garageID int64) ([]*domain.GarageAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("availability service: internal error")

// Service сервис расписания доступности гаражей.
// Окна ведутся на стороне GarageService, здесь только чтение.
type Service struct {
	repo   AvailabilityRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo AvailabilityRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListByGarage возвращает активные окна доступности гаража,
// упорядоченные по дню недели и времени начала
func (s *Service) ListByGarage(ctx context.Context, garageID int64) ([]*domain.GarageAvailability, error) {
	windows, err := s.repo.ListByGarage(ctx, garageID)
	if err != nil {
		s.logger.Error("Availability.ListByGarage: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByGarage - failed to list windows: %v", ErrInternal, err)
	}
	return windows, nil
}
