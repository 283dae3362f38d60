package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/autotrack/garage-booking-service/internal/domain"
	availabilityRepo "github.com/autotrack/garage-booking-service/internal/infra/storage/availability"
	garageClient "github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
	vehicleClient "github.com/autotrack/garage-booking-service/internal/integrations/vehicleservice"
	"github.com/autotrack/garage-booking-service/pkg/ptr"
)

// UseCase use case создания бронирования (допуск).
//
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции
// с блокировкой строки окна доступности (FOR UPDATE), поэтому два
// конкурентных запроса на последнее место слота не могут пройти проверку
// одновременно: второй ждет блокировку и видит уже созданное бронирование.
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	garageClient     GarageServiceClient
	vehicleClient    VehicleServiceClient
	events           EventPublisher
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	garageClient GarageServiceClient,
	vehicleClient VehicleServiceClient,
	events EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		garageClient:     garageClient,
		vehicleClient:    vehicleClient,
		events:           events,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет допуск нового бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, garage=%d, vehicle=%d, date=%s, time=%s",
		req.UserID, req.GarageID, req.VehicleID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не должна быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: booking date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем гараж (нужен снимок названия для истории и статистики)
	garage, err := uc.garageClient.GetGarage(ctx, req.GarageID)
	if err != nil {
		if errors.Is(err, garageClient.ErrGarageNotFound) {
			uc.logger.Warn("CreateBooking: garage id=%d not found", req.GarageID)
			return nil, ErrGarageNotFound
		}
		uc.logger.Error("CreateBooking: failed to get garage id=%d: %v", req.GarageID, err)
		return nil, fmt.Errorf("%w: failed to get garage: %v", ErrInternal, err)
	}

	// 4. Проверяем, что автомобиль принадлежит пользователю
	if _, err := uc.vehicleClient.GetUserVehicle(ctx, req.UserID, req.VehicleID); err != nil {
		if errors.Is(err, vehicleClient.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found for user=%d", req.VehicleID, req.UserID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	// 5. Дефолты из услуги: длительность и ориентировочная цена копируются
	// в бронирование на момент создания
	durationMinutes := domain.DefaultDurationMinutes
	var estimatedPrice *float64
	var serviceName *string

	if req.ServiceID != nil {
		service, err := uc.garageClient.GetService(ctx, req.GarageID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, garageClient.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%s not found in garage=%d", req.ServiceID, req.GarageID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		durationMinutes = service.DurationMinutes
		estimatedPrice = service.Price
		serviceName = ptr.Ptr(service.Name)
	}

	weekday := domain.WeekdayFromDate(req.Date)

	var result *domain.Booking

	// 6. Проверка окна, пересчет занятости и вставка - в одной
	// сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Окно доступности, покрывающее запрошенное время.
		// FOR UPDATE на строке окна сериализует конкурентный допуск
		// на этот слот.
		window, err := uc.availabilityRepo.GetWindowCovering(txCtx, req.GarageID, weekday, req.StartTime)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
				uc.logger.Warn("CreateBooking: garage=%d closed on weekday=%d at %s",
					req.GarageID, weekday, req.StartTime)
				return ErrGarageClosed
			}
			uc.logger.Error("CreateBooking: failed to get availability window: %v", err)
			return fmt.Errorf("%w: failed to get availability window: %v", ErrInternal, err)
		}

		// 6.2. Считаем занимающие бронирования на этот слот
		occupied, err := uc.bookingRepo.CountOccupying(txCtx, req.GarageID, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count occupying bookings: %v", err)
			return fmt.Errorf("%w: failed to count occupying bookings: %v", ErrInternal, err)
		}

		if occupied >= window.MaxBookingsPerSlot {
			uc.logger.Warn("CreateBooking: slot %s full for garage=%d date=%s, %d/%d spots taken",
				req.StartTime, req.GarageID, req.Date.Format(domain.DateFormat), occupied, window.MaxBookingsPerSlot)
			return ErrSlotFull
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", occupied, window.MaxBookingsPerSlot)

		// 6.3. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			UserID:          req.UserID,
			GarageID:        req.GarageID,
			VehicleID:       req.VehicleID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			BookingTime:     req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusPending,
			CustomerName:    req.Customer.Name,
			CustomerPhone:   req.Customer.Phone,
			CustomerEmail:   req.Customer.Email,
			Notes:           req.Notes,
			GarageName:      garage.Name,
			ServiceName:     serviceName,
			EstimatedPrice:  estimatedPrice,
			PaymentStatus:   domain.PaymentPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 7. Событие для NotificationService - после фиксации транзакции,
	// не блокируя ответ
	uc.events.PublishAsync(domain.NewBookingEvent(domain.EventBookingCreated, result, now))

	return &Response{Booking: result}, nil
}
