package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/infra/storage/booking"
	"github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
	"github.com/autotrack/garage-booking-service/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований.
//
// Переходы статусов выполняются доменными методами Booking, сервис
// отвечает за права доступа, сохранение и публикацию событий.
type Service struct {
	bookingRepo  BookingRepository
	garageClient GarageServiceClient
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	bookingRepo BookingRepository,
	garageClient GarageServiceClient,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		garageClient: garageClient,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID возвращает бронирование по ID.
// Доступно владельцу бронирования и менеджерам гаража.
func (s *Service) GetByID(ctx context.Context, req *models.GetBookingRequest) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if b.UserID != req.UserID {
		if err := s.checkManagerAccess(ctx, b.GarageID, req.UserID); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// List возвращает бронирования по фильтру.
// Без GarageID возвращаются только собственные бронирования пользователя,
// с GarageID требуются менеджерские права на гараж.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) ([]*domain.Booking, error) {
	filter := domain.BookingsFilter{
		GarageID:  req.GarageID,
		VehicleID: req.VehicleID,
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Upcoming:  req.Upcoming,
		Past:      req.Past,
	}

	if req.GarageID != nil {
		if err := s.checkManagerAccess(ctx, *req.GarageID, req.UserID); err != nil {
			return nil, err
		}
	} else {
		filter.UserID = &req.UserID
	}

	list, err := s.bookingRepo.List(ctx, filter, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Bookings.List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - failed to list bookings: %v", ErrInternal, err)
	}

	return list, nil
}

// Confirm подтверждает ожидающее бронирование от имени менеджера гаража
func (s *Service) Confirm(ctx context.Context, req *models.ConfirmBookingRequest) (*domain.Booking, error) {
	s.logger.Info("Bookings.Confirm: booking=%s, user=%d", req.BookingID, req.UserID)

	return s.transition(ctx, req.BookingID, req.UserID, domain.EventBookingConfirmed,
		func(b *domain.Booking, now time.Time) error {
			return b.Confirm(now)
		})
}

// Start переводит подтвержденное бронирование в работу
func (s *Service) Start(ctx context.Context, req *models.StartBookingRequest) (*domain.Booking, error) {
	s.logger.Info("Bookings.Start: booking=%s, user=%d", req.BookingID, req.UserID)

	return s.transition(ctx, req.BookingID, req.UserID, "",
		func(b *domain.Booking, now time.Time) error {
			return b.Start(now)
		})
}

// Complete завершает бронирование, фиксируя итоговую стоимость
func (s *Service) Complete(ctx context.Context, req *models.CompleteBookingRequest) (*domain.Booking, error) {
	s.logger.Info("Bookings.Complete: booking=%s, user=%d", req.BookingID, req.UserID)

	return s.transition(ctx, req.BookingID, req.UserID, domain.EventBookingCompleted,
		func(b *domain.Booking, now time.Time) error {
			if err := b.Complete(req.FinalPrice, now); err != nil {
				return err
			}
			if req.GarageNotes != nil {
				b.GarageNotes = req.GarageNotes
			}
			return nil
		})
}

// Cancel отменяет бронирование от имени владельца или менеджера гаража.
// Окно отмены действует для обоих: не позже чем за 24 часа до начала.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*domain.Booking, error) {
	s.logger.Info("Bookings.Cancel: booking=%s, user=%d", req.BookingID, req.UserID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	b, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if b.UserID != req.UserID {
		if err := s.checkManagerAccess(ctx, b.GarageID, req.UserID); err != nil {
			return nil, err
		}
	}

	var reason string
	if req.Reason != nil {
		reason = *req.Reason
	}

	now := s.timeProvider.Now()
	fromStatus := b.Status

	if err := b.Cancel(reason, &req.UserID, now); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateLifecycle(ctx, b, fromStatus); err != nil {
		return nil, s.mapUpdateError("Cancel", err)
	}

	s.publisher.PublishAsync(domain.NewBookingEvent(domain.EventBookingCancelled, b, now))

	return b, nil
}

// MarkNoShow отмечает неявку клиента на подтвержденное бронирование.
// Разрешено только в день записи.
func (s *Service) MarkNoShow(ctx context.Context, req *models.MarkNoShowRequest) (*domain.Booking, error) {
	s.logger.Info("Bookings.MarkNoShow: booking=%s, user=%d", req.BookingID, req.UserID)

	return s.transition(ctx, req.BookingID, req.UserID, "",
		func(b *domain.Booking, now time.Time) error {
			return b.MarkNoShow(now)
		})
}

// ListDueReminders возвращает подтвержденные бронирования на дату,
// для которых напоминание еще не отправлялось. Внутренняя операция.
func (s *Service) ListDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	list, err := s.bookingRepo.ListDueReminders(ctx, date)
	if err != nil {
		s.logger.Error("Bookings.ListDueReminders: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDueReminders - failed to list bookings: %v", ErrInternal, err)
	}
	return list, nil
}

// MarkReminderSent помечает напоминание отправленным. Операция
// идемпотентна: повторный вызов для уже отмеченного бронирования
// не является ошибкой.
func (s *Service) MarkReminderSent(ctx context.Context, bookingID uuid.UUID) error {
	now := s.timeProvider.Now()

	err := s.bookingRepo.MarkReminderSent(ctx, bookingID, now)
	if err == nil {
		return nil
	}
	if errors.Is(err, booking.ErrBookingNotFound) {
		return fmt.Errorf("%w: MarkReminderSent - booking %s", ErrBookingNotFound, bookingID)
	}

	s.logger.Error("Bookings.MarkReminderSent: repository error: %v", err)
	return fmt.Errorf("%w: MarkReminderSent - failed to update booking: %v", ErrInternal, err)
}

// transition выполняет менеджерский переход статуса: проверка прав,
// доменный переход, сохранение и публикация события (если eventType задан).
// Сохранение - compare-and-set по статусу, прочитанному перед переходом:
// конкурентный переход, успевший зафиксироваться первым, не перезаписывается.
func (s *Service) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	userID int64,
	eventType domain.EventType,
	apply func(b *domain.Booking, now time.Time) error,
) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, b.GarageID, userID); err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	fromStatus := b.Status

	if err := apply(b, now); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateLifecycle(ctx, b, fromStatus); err != nil {
		return nil, s.mapUpdateError("transition", err)
	}

	if eventType != "" {
		s.publisher.PublishAsync(domain.NewBookingEvent(eventType, b, now))
	}

	return b, nil
}

func (s *Service) getBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrBookingNotFound, id)
		}
		s.logger.Error("Bookings: failed to get booking %s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return b, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером гаража
func (s *Service) checkManagerAccess(ctx context.Context, garageID, userID int64) error {
	garage, err := s.garageClient.GetGarage(ctx, garageID)
	if err != nil {
		if errors.Is(err, garageservice.ErrGarageNotFound) {
			return fmt.Errorf("%w: garage %d", ErrGarageNotFound, garageID)
		}
		s.logger.Error("Bookings: failed to get garage %d: %v", garageID, err)
		return fmt.Errorf("%w: failed to get garage: %v", ErrInternal, err)
	}

	if !garage.IsManager(userID) {
		s.logger.Warn("Bookings: user %d has no manager access to garage %d", userID, garageID)
		return fmt.Errorf("%w: user %d is not a manager of garage %d", ErrAccessDenied, userID, garageID)
	}

	return nil
}

func (s *Service) mapUpdateError(method string, err error) error {
	if errors.Is(err, booking.ErrBookingNotFound) {
		return fmt.Errorf("%w: %s - booking disappeared", ErrBookingNotFound, method)
	}
	if errors.Is(err, booking.ErrStatusConflict) {
		s.logger.Warn("Bookings.%s: concurrent status change: %v", method, err)
		return fmt.Errorf("%w: %s - booking status changed concurrently", domain.ErrInvalidTransition, method)
	}
	s.logger.Error("Bookings.%s: failed to update booking: %v", method, err)
	return fmt.Errorf("%w: %s - failed to update booking: %v", ErrInternal, method, err)
}
