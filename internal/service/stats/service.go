package stats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
)

// GarageStatsRequest запрос статистики бронирований гаража.
// StartDate и EndDate опционально ограничивают период по дате записи.
type GarageStatsRequest struct {
	GarageID  int64
	UserID    int64
	StartDate *time.Time
	EndDate   *time.Time
}

// UserStatsRequest запрос статистики бронирований пользователя
type UserStatsRequest struct {
	UserID int64
}

// Stats агрегированная статистика по набору бронирований
type Stats struct {
	TotalBookings int
	ByStatus      map[domain.BookingStatus]int

	// Количество активных записей на ближайшие 7 дней и на сегодня
	Upcoming7Days int
	Today         int

	// Revenue суммирует итоговые стоимости завершенных бронирований
	Revenue float64

	// AverageRating средний рейтинг отзывов по завершенным бронированиям,
	// округленный до двух знаков. nil при отсутствии отзывов.
	AverageRating *float64

	// Распределения по снимкам названий услуги и гаража
	ByService map[string]int
	ByGarage  map[string]int
}

// Service агрегатор статистики бронирований
type Service struct {
	bookingRepo  BookingRepository
	reviewRepo   ReviewRepository
	garageClient GarageServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр агрегатора статистики
func NewService(
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	garageClient GarageServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		garageClient: garageClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetGarageStats возвращает статистику бронирований гаража.
// Доступно только менеджерам гаража.
func (s *Service) GetGarageStats(ctx context.Context, req *GarageStatsRequest) (*Stats, error) {
	s.logger.Info("Stats.GetGarageStats: garage=%d, user=%d", req.GarageID, req.UserID)

	garage, err := s.garageClient.GetGarage(ctx, req.GarageID)
	if err != nil {
		if errors.Is(err, garageservice.ErrGarageNotFound) {
			return nil, fmt.Errorf("%w: garage %d", ErrGarageNotFound, req.GarageID)
		}
		s.logger.Error("Stats.GetGarageStats: failed to get garage: %v", err)
		return nil, fmt.Errorf("%w: GetGarageStats - failed to get garage: %v", ErrInternal, err)
	}
	if !garage.IsManager(req.UserID) {
		return nil, fmt.Errorf("%w: user %d is not a manager of garage %d",
			ErrAccessDenied, req.UserID, req.GarageID)
	}

	return s.aggregate(ctx, domain.BookingsFilter{
		GarageID:  &req.GarageID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
}

// GetUserStats возвращает статистику бронирований пользователя
func (s *Service) GetUserStats(ctx context.Context, req *UserStatsRequest) (*Stats, error) {
	s.logger.Info("Stats.GetUserStats: user=%d", req.UserID)

	return s.aggregate(ctx, domain.BookingsFilter{UserID: &req.UserID})
}

// aggregate собирает статистику по бронированиям, попавшим под фильтр
func (s *Service) aggregate(ctx context.Context, filter domain.BookingsFilter) (*Stats, error) {
	now := s.timeProvider.Now()

	list, err := s.bookingRepo.List(ctx, filter, now)
	if err != nil {
		s.logger.Error("Stats: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	result := &Stats{
		TotalBookings: len(list),
		ByStatus:      make(map[domain.BookingStatus]int),
		ByService:     make(map[string]int),
		ByGarage:      make(map[string]int),
	}

	completedIDs := make([]uuid.UUID, 0)

	for _, b := range list {
		result.ByStatus[b.Status]++
		result.ByGarage[b.GarageName]++
		if b.ServiceName != nil {
			result.ByService[*b.ServiceName]++
		}

		if b.IsOccupying() {
			if b.IsUpcoming(now) {
				result.Upcoming7Days++
			}
			if b.IsToday(now) {
				result.Today++
			}
		}

		if b.Status == domain.StatusCompleted {
			completedIDs = append(completedIDs, b.ID)
			if b.FinalPrice != nil {
				result.Revenue += *b.FinalPrice
			}
		}
	}

	rating, err := s.averageRating(ctx, completedIDs)
	if err != nil {
		return nil, err
	}
	result.AverageRating = rating

	return result, nil
}

// averageRating считает средний рейтинг отзывов, округленный до 2 знаков
func (s *Service) averageRating(ctx context.Context, bookingIDs []uuid.UUID) (*float64, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}

	reviews, err := s.reviewRepo.ListByBookingIDs(ctx, bookingIDs)
	if err != nil {
		s.logger.Error("Stats: failed to list reviews: %v", err)
		return nil, fmt.Errorf("%w: failed to list reviews: %v", ErrInternal, err)
	}
	if len(reviews) == 0 {
		return nil, nil
	}

	var sum int
	for _, rv := range reviews {
		sum += rv.Rating
	}

	avg := math.Round(float64(sum)/float64(len(reviews))*100) / 100
	return &avg, nil
}
