package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/infra/storage/booking"
	"github.com/autotrack/garage-booking-service/internal/infra/storage/review"
)

// CreateReviewRequest запрос создания отзыва
type CreateReviewRequest struct {
	BookingID      uuid.UUID
	UserID         int64
	Rating         int
	Comment        string
	WouldRecommend bool
	ServiceQuality *int
	WaitingTime    *int
	ValueForMoney  *int
}

// Service сервис отзывов о выполненных работах.
//
// Отзыв разрешен только владельцу завершенного бронирования, не более
// одного на бронирование.
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Create создает отзыв на завершенное бронирование
func (s *Service) Create(ctx context.Context, req *CreateReviewRequest) (*domain.BookingReview, error) {
	s.logger.Info("Reviews.Create: booking=%s, user=%d, rating=%d",
		req.BookingID, req.UserID, req.Rating)

	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}
	for _, sub := range []*int{req.ServiceQuality, req.WaitingTime, req.ValueForMoney} {
		if sub == nil {
			continue
		}
		if err := validateRating(*sub); err != nil {
			return nil, err
		}
	}

	b, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrBookingNotFound, req.BookingID)
		}
		s.logger.Error("Reviews.Create: failed to get booking: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to get booking: %v", ErrInternal, err)
	}

	if b.UserID != req.UserID {
		return nil, fmt.Errorf("%w: booking belongs to another user", ErrAccessDenied)
	}
	if b.Status != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrBookingNotCompleted, b.Status)
	}

	rv := &domain.BookingReview{
		BookingID:      req.BookingID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		WouldRecommend: req.WouldRecommend,
		ServiceQuality: req.ServiceQuality,
		WaitingTime:    req.WaitingTime,
		ValueForMoney:  req.ValueForMoney,
	}

	created, err := s.reviewRepo.Create(ctx, rv)
	if err != nil {
		if errors.Is(err, review.ErrAlreadyReviewed) {
			return nil, fmt.Errorf("%w: booking %s", ErrAlreadyReviewed, req.BookingID)
		}
		s.logger.Error("Reviews.Create: failed to create review: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to create review: %v", ErrInternal, err)
	}

	return created, nil
}

// GetByBookingID возвращает отзыв на бронирование
func (s *Service) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingReview, error) {
	rv, err := s.reviewRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, review.ErrReviewNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrReviewNotFound, bookingID)
		}
		s.logger.Error("Reviews.GetByBookingID: failed to get review: %v", err)
		return nil, fmt.Errorf("%w: GetByBookingID - failed to get review: %v", ErrInternal, err)
	}
	return rv, nil
}

// validateRating проверяет рейтинг на принадлежность диапазону 1..5
func validateRating(rating int) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	return nil
}
