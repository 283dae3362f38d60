package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

type fakeBookingRepo struct {
	occupied map[types.TimeString]int
}

func (f *fakeBookingRepo) CountOccupyingForDay(_ context.Context, _ int64, _ time.Time) (map[types.TimeString]int, error) {
	if f.occupied == nil {
		return map[types.TimeString]int{}, nil
	}
	return f.occupied, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.GarageAvailability
}

func (f *fakeAvailabilityRepo) ListForWeekday(_ context.Context, _ int64, _ int) ([]*domain.GarageAvailability, error) {
	return f.windows, nil
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

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	parsed, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return parsed
}

func window(t *testing.T, start, end string, capacity int) *domain.GarageAvailability {
	t.Helper()
	return &domain.GarageAvailability{
		GarageID:           1,
		StartTime:          ts(t, start),
		EndTime:            ts(t, end),
		MaxBookingsPerSlot: capacity,
		IsActive:           true,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, windows *fakeAvailabilityRepo, now time.Time) *UseCase {
	return NewUseCase(bookings, windows, noopLogger{}).
		WithTimeProvider(&fixedTime{now: now})
}

func TestGetAvailableSlots_ExpandsWindowInto30MinuteSteps(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	// 2026-03-12 четверг
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{windows: []*domain.GarageAvailability{
			window(t, "08:00", "10:00", 2),
		}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{GarageID: 1, Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	times := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		times = append(times, slot.Time.String())
		assert.Equal(t, 2, slot.AvailableSpots)
		assert.Equal(t, 2, slot.TotalSpots)
	}
	// Конец окна 10:00 не становится слотом
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, times)
}

func TestGetAvailableSlots_OddWindowEndCutsLastStep(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{windows: []*domain.GarageAvailability{
			window(t, "09:00", "10:15", 1),
		}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{GarageID: 1, Date: date})
	require.NoError(t, err)

	// 10:00 эмитится, так как 10:00 < 10:15
	times := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		times = append(times, slot.Time.String())
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, times)
}

func TestGetAvailableSlots_OccupancySubtractedAndFullSlotsDropped(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{occupied: map[types.TimeString]int{
			ts(t, "08:00"): 2, // занят полностью
			ts(t, "08:30"): 1, // частично
		}},
		&fakeAvailabilityRepo{windows: []*domain.GarageAvailability{
			window(t, "08:00", "09:30", 2),
		}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{GarageID: 1, Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "08:30", resp.Slots[0].Time.String())
	assert.Equal(t, 1, resp.Slots[0].AvailableSpots)
	assert.Equal(t, 2, resp.Slots[0].TotalSpots)
	assert.Equal(t, "09:00", resp.Slots[1].Time.String())
	assert.Equal(t, 2, resp.Slots[1].AvailableSpots)
}

func TestGetAvailableSlots_ClosedDayReturnsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{GarageID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_PastDateReturnsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{windows: []*domain.GarageAvailability{
			window(t, "08:00", "18:00", 3),
		}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{GarageID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_MultipleWindowsWithLunchBreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeAvailabilityRepo{windows: []*domain.GarageAvailability{
			window(t, "09:00", "12:00", 2),
			window(t, "13:00", "15:00", 1),
		}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{GarageID: 1, Date: date})
	require.NoError(t, err)

	// 6 слотов утром + 4 после обеда, 12:00-13:00 отсутствует
	require.Len(t, resp.Slots, 10)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, "12:00", slot.Time.String())
		assert.NotEqual(t, "12:30", slot.Time.String())
	}
	assert.Equal(t, 1, resp.Slots[6].AvailableSpots) // первый послеобеденный
}

func TestGetAvailableSlots_InvalidInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeAvailabilityRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{GarageID: 0, Date: now})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{GarageID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
