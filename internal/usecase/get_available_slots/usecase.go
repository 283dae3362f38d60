package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// UseCase use case получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает слоты гаража на дату со свободными местами.
// Пустой список означает, что гараж закрыт либо все слоты заняты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: garage=%d, date=%s",
		req.GarageID, req.Date.Format(domain.DateFormat))

	if req.GarageID <= 0 {
		return nil, fmt.Errorf("%w: garageID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	resp := &Response{
		GarageID: req.GarageID,
		Date:     req.Date,
		Slots:    []domain.AvailableSlot{},
	}

	// На прошедшие даты слоты не выдаются
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return resp, nil
	}

	weekday := domain.WeekdayFromDate(req.Date)

	windows, err := uc.availabilityRepo.ListForWeekday(ctx, req.GarageID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list availability windows: %v", ErrInternal, err)
	}

	// Нет окон - гараж закрыт в этот день недели, это не ошибка
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: garage=%d closed on weekday=%d", req.GarageID, weekday)
		return resp, nil
	}

	occupied, err := uc.bookingRepo.CountOccupyingForDay(ctx, req.GarageID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count occupying bookings: %v", ErrInternal, err)
	}

	resp.Slots = applyOccupancy(expandWindows(req.Date, windows), occupied)

	uc.logger.Info("GetAvailableSlots: %d available slots for garage=%d, date=%s",
		len(resp.Slots), req.GarageID, req.Date.Format(domain.DateFormat))

	return resp, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
