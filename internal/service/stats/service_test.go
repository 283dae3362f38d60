package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
	"github.com/autotrack/garage-booking-service/pkg/ptr"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingsFilter, _ time.Time) ([]*domain.Booking, error) {
	list := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.GarageID != nil && b.GarageID != *filter.GarageID {
			continue
		}
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		list = append(list, b)
	}
	return list, nil
}

type fakeReviewRepo struct {
	reviews []*domain.BookingReview
}

func (f *fakeReviewRepo) ListByBookingIDs(_ context.Context, bookingIDs []uuid.UUID) ([]*domain.BookingReview, error) {
	ids := make(map[uuid.UUID]bool, len(bookingIDs))
	for _, id := range bookingIDs {
		ids[id] = true
	}

	list := make([]*domain.BookingReview, 0)
	for _, rv := range f.reviews {
		if ids[rv.BookingID] {
			list = append(list, rv)
		}
	}
	return list, nil
}

type fakeGarageClient struct {
	garage *garageservice.Garage
}

func (f *fakeGarageClient) GetGarage(_ context.Context, _ int64) (*garageservice.Garage, error) {
	if f.garage == nil {
		return nil, garageservice.ErrGarageNotFound
	}
	return f.garage, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const managerID = int64(77)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func booking(t *testing.T, status domain.BookingStatus, date time.Time, serviceName string, finalPrice *float64) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		ID:          uuid.New(),
		UserID:      10,
		GarageID:    1,
		BookingDate: date,
		BookingTime: mustTime(t, "10:00"),
		Status:      status,
		GarageName:  "AutoFix",
		FinalPrice:  finalPrice,
	}
	if serviceName != "" {
		b.ServiceName = &serviceName
	}
	return b
}

func TestStats_GarageAggregation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	inThreeDays := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	completed1 := booking(t, domain.StatusCompleted, lastWeek, "Oil change", ptr.Ptr(100.0))
	completed2 := booking(t, domain.StatusCompleted, lastWeek, "Diagnostics", ptr.Ptr(250.5))

	// Сегодняшняя запись еще впереди: 15:00 при "сейчас" 12:00
	todayBooking := booking(t, domain.StatusConfirmed, today, "Oil change", nil)
	todayBooking.BookingTime = mustTime(t, "15:00")

	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		completed1,
		completed2,
		todayBooking,
		booking(t, domain.StatusPending, inThreeDays, "", nil),
		booking(t, domain.StatusCancelled, inThreeDays, "", nil),
		booking(t, domain.StatusNoShow, lastWeek, "", nil),
	}}

	reviewRepo := &fakeReviewRepo{reviews: []*domain.BookingReview{
		{ID: uuid.New(), BookingID: completed1.ID, Rating: 5},
		{ID: uuid.New(), BookingID: completed2.ID, Rating: 4},
	}}

	svc := NewService(
		bookingRepo,
		reviewRepo,
		&fakeGarageClient{garage: &garageservice.Garage{ID: 1, ManagerIDs: []int64{managerID}}},
		noopLogger{},
	).WithTimeProvider(&fixedTime{now: now})

	result, err := svc.GetGarageStats(context.Background(), &GarageStatsRequest{
		GarageID: 1,
		UserID:   managerID,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, result.TotalBookings)
	assert.Equal(t, 2, result.ByStatus[domain.StatusCompleted])
	assert.Equal(t, 1, result.ByStatus[domain.StatusConfirmed])
	assert.Equal(t, 1, result.ByStatus[domain.StatusPending])
	assert.Equal(t, 1, result.ByStatus[domain.StatusCancelled])
	assert.Equal(t, 1, result.ByStatus[domain.StatusNoShow])

	// Сегодняшняя запись и запись через 3 дня активны,
	// отмененная через 3 дня - нет
	assert.Equal(t, 1, result.Today)
	assert.Equal(t, 2, result.Upcoming7Days)

	// Выручка только по завершенным
	assert.Equal(t, 350.5, result.Revenue)

	// Средний рейтинг (5+4)/2 = 4.5
	require.NotNil(t, result.AverageRating)
	assert.Equal(t, 4.5, *result.AverageRating)

	assert.Equal(t, 2, result.ByService["Oil change"])
	assert.Equal(t, 1, result.ByService["Diagnostics"])
	assert.Equal(t, 6, result.ByGarage["AutoFix"])
}

func TestStats_AverageRatingRounding(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	b1 := booking(t, domain.StatusCompleted, lastWeek, "", nil)
	b2 := booking(t, domain.StatusCompleted, lastWeek, "", nil)
	b3 := booking(t, domain.StatusCompleted, lastWeek, "", nil)

	svc := NewService(
		&fakeBookingRepo{bookings: []*domain.Booking{b1, b2, b3}},
		&fakeReviewRepo{reviews: []*domain.BookingReview{
			{ID: uuid.New(), BookingID: b1.ID, Rating: 5},
			{ID: uuid.New(), BookingID: b2.ID, Rating: 4},
			{ID: uuid.New(), BookingID: b3.ID, Rating: 4},
		}},
		&fakeGarageClient{garage: &garageservice.Garage{ID: 1, ManagerIDs: []int64{managerID}}},
		noopLogger{},
	).WithTimeProvider(&fixedTime{now: now})

	result, err := svc.GetGarageStats(context.Background(), &GarageStatsRequest{
		GarageID: 1,
		UserID:   managerID,
	})
	require.NoError(t, err)

	// (5+4+4)/3 = 4.333... округляется до 4.33
	require.NotNil(t, result.AverageRating)
	assert.Equal(t, 4.33, *result.AverageRating)
}

func TestStats_NoReviewsNoRating(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	svc := NewService(
		&fakeBookingRepo{},
		&fakeReviewRepo{},
		&fakeGarageClient{garage: &garageservice.Garage{ID: 1, ManagerIDs: []int64{managerID}}},
		noopLogger{},
	).WithTimeProvider(&fixedTime{now: now})

	result, err := svc.GetGarageStats(context.Background(), &GarageStatsRequest{
		GarageID: 1,
		UserID:   managerID,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalBookings)
	assert.Nil(t, result.AverageRating)
	assert.Zero(t, result.Revenue)
}

func TestStats_AccessDenied(t *testing.T) {
	svc := NewService(
		&fakeBookingRepo{},
		&fakeReviewRepo{},
		&fakeGarageClient{garage: &garageservice.Garage{ID: 1, ManagerIDs: []int64{managerID}}},
		noopLogger{},
	)

	_, err := svc.GetGarageStats(context.Background(), &GarageStatsRequest{
		GarageID: 1,
		UserID:   999,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestStats_UserStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	mine := booking(t, domain.StatusCompleted, lastWeek, "Oil change", ptr.Ptr(80.0))

	other := booking(t, domain.StatusCompleted, lastWeek, "", nil)
	other.UserID = 999

	svc := NewService(
		&fakeBookingRepo{bookings: []*domain.Booking{mine, other}},
		&fakeReviewRepo{},
		&fakeGarageClient{},
		noopLogger{},
	).WithTimeProvider(&fixedTime{now: now})

	result, err := svc.GetUserStats(context.Background(), &UserStatsRequest{UserID: 10})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalBookings)
	assert.Equal(t, 80.0, result.Revenue)
}
