package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

type fakeBookingsService struct {
	due        []*domain.Booking
	markedSent []uuid.UUID
	markErr    error
}

func (f *fakeBookingsService) ListDueReminders(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return f.due, nil
}

func (f *fakeBookingsService) MarkReminderSent(_ context.Context, bookingID uuid.UUID) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedSent = append(f.markedSent, bookingID)
	return nil
}

type fakePublisher struct {
	events     []domain.BookingEvent
	publishErr error
}

func (f *fakePublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.events = append(f.events, event)
	return nil
}

type fakeMetrics struct {
	remindersSent int
}

func (f *fakeMetrics) IncRemindersSent() {
	f.remindersSent++
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func dueBooking(id uuid.UUID) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		GarageID:    1,
		Status:      domain.StatusConfirmed,
		BookingDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		BookingTime: "10:00",
		GarageName:  "AutoFix",
	}
}

func TestRemindersWorker_RunOnce(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()

	bookings := &fakeBookingsService{due: []*domain.Booking{dueBooking(id1), dueBooking(id2)}}
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}

	w := NewWorker(bookings, publisher, metrics, "0 9 * * *", noopLogger{}).
		WithTimeProvider(&fixedTime{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)})

	require.NoError(t, w.RunOnce(context.Background()))

	require.Len(t, publisher.events, 2)
	assert.Equal(t, domain.EventBookingReminder, publisher.events[0].Type)
	assert.ElementsMatch(t, []uuid.UUID{id1, id2}, bookings.markedSent)
	assert.Equal(t, 2, metrics.remindersSent)
}

func TestRemindersWorker_NothingDue(t *testing.T) {
	bookings := &fakeBookingsService{}
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}

	w := NewWorker(bookings, publisher, metrics, "0 9 * * *", noopLogger{}).
		WithTimeProvider(&fixedTime{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)})

	require.NoError(t, w.RunOnce(context.Background()))
	assert.Empty(t, publisher.events)
	assert.Zero(t, metrics.remindersSent)
}

func TestRemindersWorker_PublishFailureLeavesBookingUnmarked(t *testing.T) {
	bookings := &fakeBookingsService{due: []*domain.Booking{dueBooking(uuid.New())}}
	publisher := &fakePublisher{publishErr: errors.New("notify service down")}
	metrics := &fakeMetrics{}

	w := NewWorker(bookings, publisher, metrics, "0 9 * * *", noopLogger{}).
		WithTimeProvider(&fixedTime{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)})

	err := w.RunOnce(context.Background())
	assert.Error(t, err)

	// Пометка не ставится - следующий проход повторит попытку
	assert.Empty(t, bookings.markedSent)
	assert.Zero(t, metrics.remindersSent)
}

func TestRemindersWorker_InvalidCronSpec(t *testing.T) {
	w := NewWorker(&fakeBookingsService{}, &fakePublisher{}, &fakeMetrics{}, "not a cron spec", noopLogger{})
	assert.Error(t, w.Start())
}
