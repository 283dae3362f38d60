package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autotrack/garage-booking-service/internal/domain"
	availabilityRepo "github.com/autotrack/garage-booking-service/internal/infra/storage/availability"
	"github.com/autotrack/garage-booking-service/internal/integrations/garageservice"
	"github.com/autotrack/garage-booking-service/internal/integrations/vehicleservice"
	"github.com/autotrack/garage-booking-service/pkg/ptr"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

// fakeBookingRepo хранит бронирования в памяти и считает занятость так же,
// как это делает SQL репозиторий
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBookingRepo) CountOccupying(_ context.Context, garageID int64, date time.Time, t types.TimeString) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, b := range f.bookings {
		if b.GarageID == garageID && b.BookingDate.Equal(date) && b.BookingTime == t && b.IsOccupying() {
			count++
		}
	}
	return count, nil
}

type fakeAvailabilityRepo struct {
	window *domain.GarageAvailability
}

func (f *fakeAvailabilityRepo) GetWindowCovering(_ context.Context, _ int64, _ int, t types.TimeString) (*domain.GarageAvailability, error) {
	if f.window == nil || !f.window.Covers(t) {
		return nil, availabilityRepo.ErrWindowNotFound
	}
	return f.window, nil
}

type fakeGarageClient struct {
	garage  *garageservice.Garage
	service *garageservice.Service
}

func (f *fakeGarageClient) GetGarage(_ context.Context, _ int64) (*garageservice.Garage, error) {
	if f.garage == nil {
		return nil, garageservice.ErrGarageNotFound
	}
	return f.garage, nil
}

func (f *fakeGarageClient) GetService(_ context.Context, _ int64, _ uuid.UUID) (*garageservice.Service, error) {
	if f.service == nil {
		return nil, garageservice.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeVehicleClient struct {
	vehicle *vehicleservice.Vehicle
}

func (f *fakeVehicleClient) GetUserVehicle(_ context.Context, _, _ int64) (*vehicleservice.Vehicle, error) {
	if f.vehicle == nil {
		return nil, vehicleservice.ErrVehicleNotFound
	}
	return f.vehicle, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func (f *fakePublisher) PublishAsync(event domain.BookingEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

// fakeTxManager сериализует транзакции мьютексом - как это делает
// PostgreSQL блокировкой FOR UPDATE на строке окна доступности
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

type testEnv struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	windows   *fakeAvailabilityRepo
	garages   *fakeGarageClient
	vehicles  *fakeVehicleClient
	publisher *fakePublisher
}

func newTestEnv(t *testing.T, capacity int) *testEnv {
	t.Helper()

	env := &testEnv{
		bookings: &fakeBookingRepo{},
		windows: &fakeAvailabilityRepo{
			window: &domain.GarageAvailability{
				GarageID:           1,
				StartTime:          ts(t, "08:00"),
				EndTime:            ts(t, "18:00"),
				MaxBookingsPerSlot: capacity,
				IsActive:           true,
			},
		},
		garages: &fakeGarageClient{
			garage: &garageservice.Garage{ID: 1, Name: "AutoFix"},
		},
		vehicles: &fakeVehicleClient{
			vehicle: &vehicleservice.Vehicle{ID: 5, UserID: 10},
		},
		publisher: &fakePublisher{},
	}

	env.uc = NewUseCase(
		env.bookings,
		env.windows,
		env.garages,
		env.vehicles,
		env.publisher,
		&fakeTxManager{},
		noopLogger{},
	).WithTimeProvider(&fixedTime{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)})

	return env
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		UserID:    10,
		GarageID:  1,
		VehicleID: 5,
		Date:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: ts(t, "10:00"),
		Customer: Customer{
			Name:  "Ivan Petrov",
			Phone: "+79001234567",
			Email: "ivan@example.com",
		},
	}
}

func TestCreateBooking_Success(t *testing.T) {
	env := newTestEnv(t, 2)

	resp, err := env.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)

	b := resp.Booking
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, "AutoFix", b.GarageName)
	assert.Equal(t, domain.DefaultDurationMinutes, b.DurationMinutes)
	assert.NotEqual(t, uuid.Nil, b.ID)

	// Опубликовано событие создания
	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, domain.EventBookingCreated, env.publisher.events[0].Type)
	assert.Equal(t, b.ID, env.publisher.events[0].BookingID)
}

func TestCreateBooking_ServiceDefaultsCopied(t *testing.T) {
	env := newTestEnv(t, 2)
	serviceID := uuid.New()
	env.garages.service = &garageservice.Service{
		ID:              serviceID,
		GarageID:        1,
		Name:            "Oil change",
		DurationMinutes: 45,
		Price:           ptr.Ptr(250.0),
		IsActive:        true,
	}

	req := validRequest(t)
	req.ServiceID = &serviceID

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, 45, b.DurationMinutes)
	require.NotNil(t, b.EstimatedPrice)
	assert.Equal(t, 250.0, *b.EstimatedPrice)
	require.NotNil(t, b.ServiceName)
	assert.Equal(t, "Oil change", *b.ServiceName)
}

func TestCreateBooking_GarageClosed(t *testing.T) {
	env := newTestEnv(t, 2)

	req := validRequest(t)
	req.StartTime = ts(t, "19:00") // вне окна 08:00-18:00

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrGarageClosed)
	assert.Empty(t, env.publisher.events)
}

func TestCreateBooking_SlotFull(t *testing.T) {
	env := newTestEnv(t, 1)

	_, err := env.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	// Второе бронирование на тот же слот не проходит
	req := validRequest(t)
	req.UserID = 11
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotFull)

	// Другое время того же дня - свободно
	req = validRequest(t)
	req.UserID = 11
	req.StartTime = ts(t, "10:30")
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateBooking_CancelledBookingFreesSlot(t *testing.T) {
	env := newTestEnv(t, 1)

	resp, err := env.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	// Отмененное бронирование не занимает слот
	resp.Booking.Status = domain.StatusCancelled

	_, err = env.uc.Execute(context.Background(), validRequest(t))
	assert.NoError(t, err)
}

func TestCreateBooking_PastDate(t *testing.T) {
	env := newTestEnv(t, 2)

	req := validRequest(t)
	req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreateBooking_NotFoundErrors(t *testing.T) {
	t.Run("garage", func(t *testing.T) {
		env := newTestEnv(t, 2)
		env.garages.garage = nil

		_, err := env.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrGarageNotFound)
	})

	t.Run("vehicle", func(t *testing.T) {
		env := newTestEnv(t, 2)
		env.vehicles.vehicle = nil

		_, err := env.uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})

	t.Run("service", func(t *testing.T) {
		env := newTestEnv(t, 2)
		serviceID := uuid.New()
		req := validRequest(t)
		req.ServiceID = &serviceID

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestCreateBooking_Validation(t *testing.T) {
	env := newTestEnv(t, 2)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero user", func(req *Request) { req.UserID = 0 }},
		{"zero garage", func(req *Request) { req.GarageID = 0 }},
		{"zero vehicle", func(req *Request) { req.VehicleID = 0 }},
		{"zero date", func(req *Request) { req.Date = time.Time{} }},
		{"empty time", func(req *Request) { req.StartTime = "" }},
		{"empty name", func(req *Request) { req.Customer.Name = "  " }},
		{"empty phone", func(req *Request) { req.Customer.Phone = "" }},
		{"bad email", func(req *Request) { req.Customer.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// TestCreateBooking_ConcurrentAdmission проверяет, что при параллельных
// запросах на последние места слота вместимость никогда не превышается
func TestCreateBooking_ConcurrentAdmission(t *testing.T) {
	const capacity = 3
	const attempts = 20

	env := newTestEnv(t, capacity)

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			req := validRequest(t)
			req.UserID = userID
			_, err := env.uc.Execute(context.Background(), req)
			results <- err
		}(int64(100 + i))
	}

	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotFull):
			rejected++
		}
	}

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, attempts-capacity, rejected)

	// В хранилище ровно capacity занимающих бронирований на слот
	occupied, err := env.bookings.CountOccupying(context.Background(), 1,
		time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), ts(t, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, capacity, occupied)
}
