package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autotrack/garage-booking-service/internal/domain"
	bookingStorage "github.com/autotrack/garage-booking-service/internal/infra/storage/booking"
	reviewStorage "github.com/autotrack/garage-booking-service/internal/infra/storage/review"
)

type fakeReviewRepo struct {
	byBooking map[uuid.UUID]*domain.BookingReview
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byBooking: make(map[uuid.UUID]*domain.BookingReview)}
}

func (f *fakeReviewRepo) Create(_ context.Context, rv *domain.BookingReview) (*domain.BookingReview, error) {
	// UNIQUE(booking_id) в БД
	if _, ok := f.byBooking[rv.BookingID]; ok {
		return nil, reviewStorage.ErrAlreadyReviewed
	}
	rv.ID = uuid.New()
	f.byBooking[rv.BookingID] = rv
	return rv, nil
}

func (f *fakeReviewRepo) GetByBookingID(_ context.Context, bookingID uuid.UUID) (*domain.BookingReview, error) {
	rv, ok := f.byBooking[bookingID]
	if !ok {
		return nil, reviewStorage.ErrReviewNotFound
	}
	return rv, nil
}

type fakeBookingRepo struct {
	byID map[uuid.UUID]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingStorage.ErrBookingNotFound
	}
	return b, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const ownerID = int64(10)

func newTestService(bookings ...*domain.Booking) (*Service, *fakeReviewRepo) {
	bookingRepo := &fakeBookingRepo{byID: make(map[uuid.UUID]*domain.Booking)}
	for _, b := range bookings {
		bookingRepo.byID[b.ID] = b
	}

	reviewRepo := newFakeReviewRepo()
	return NewService(reviewRepo, bookingRepo, noopLogger{}), reviewRepo
}

func completedBooking() *domain.Booking {
	return &domain.Booking{
		ID:     uuid.New(),
		UserID: ownerID,
		Status: domain.StatusCompleted,
	}
}

func TestReviews_Create(t *testing.T) {
	b := completedBooking()
	svc, _ := newTestService(b)

	quality := 5
	rv, err := svc.Create(context.Background(), &CreateReviewRequest{
		BookingID:      b.ID,
		UserID:         ownerID,
		Rating:         4,
		Comment:        "good service",
		WouldRecommend: true,
		ServiceQuality: &quality,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rv.ID)
	assert.Equal(t, b.ID, rv.BookingID)
	assert.Equal(t, 4, rv.Rating)
	require.NotNil(t, rv.ServiceQuality)
	assert.Equal(t, 5, *rv.ServiceQuality)
}

func TestReviews_Create_OncePerBooking(t *testing.T) {
	b := completedBooking()
	svc, _ := newTestService(b)

	req := &CreateReviewRequest{BookingID: b.ID, UserID: ownerID, Rating: 5}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviews_Create_OnlyCompleted(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCancelled,
		domain.StatusNoShow,
	} {
		b := completedBooking()
		b.Status = status
		svc, _ := newTestService(b)

		_, err := svc.Create(context.Background(), &CreateReviewRequest{
			BookingID: b.ID,
			UserID:    ownerID,
			Rating:    5,
		})
		assert.ErrorIs(t, err, ErrBookingNotCompleted, "status %s", status)
	}
}

func TestReviews_Create_OnlyOwner(t *testing.T) {
	b := completedBooking()
	svc, _ := newTestService(b)

	_, err := svc.Create(context.Background(), &CreateReviewRequest{
		BookingID: b.ID,
		UserID:    999,
		Rating:    5,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReviews_Create_RatingValidation(t *testing.T) {
	b := completedBooking()
	svc, _ := newTestService(b)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Create(context.Background(), &CreateReviewRequest{
			BookingID: b.ID,
			UserID:    ownerID,
			Rating:    rating,
		})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}

	// Субрейтинги валидируются так же
	bad := 7
	_, err := svc.Create(context.Background(), &CreateReviewRequest{
		BookingID:   b.ID,
		UserID:      ownerID,
		Rating:      5,
		WaitingTime: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestReviews_Create_BookingNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), &CreateReviewRequest{
		BookingID: uuid.New(),
		UserID:    ownerID,
		Rating:    5,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestReviews_GetByBookingID(t *testing.T) {
	b := completedBooking()
	svc, _ := newTestService(b)

	_, err := svc.GetByBookingID(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, err = svc.Create(context.Background(), &CreateReviewRequest{
		BookingID: b.ID,
		UserID:    ownerID,
		Rating:    3,
	})
	require.NoError(t, err)

	rv, err := svc.GetByBookingID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, rv.Rating)
}
