package create_booking

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autotrack/garage-booking-service/internal/api/middleware"
	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/usecase/create_booking"
)

type fakeUseCase struct {
	booking *domain.Booking
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *create_booking.Request) (*create_booking.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &create_booking.Response{Booking: f.booking}, nil
}

type fakeMetrics struct {
	created  int
	slotFull int
}

func (f *fakeMetrics) IncBookingsCreated(int64)    { f.created++ }
func (f *fakeMetrics) IncSlotFullRejections(int64) { f.slotFull++ }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const requestBody = `{
	"garage_id": 1,
	"vehicle_id": 5,
	"booking_date": "2026-03-12",
	"booking_time": "10:00",
	"customer_name": "Ivan",
	"customer_phone": "+79001234567",
	"customer_email": "ivan@example.com"
}`

func doRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "10")
	rec := httptest.NewRecorder()

	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingHandler_Success(t *testing.T) {
	metrics := &fakeMetrics{}
	h := NewHandler(&fakeUseCase{booking: &domain.Booking{
		UserID:      10,
		GarageID:    1,
		VehicleID:   5,
		BookingDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		BookingTime: "10:00",
		Status:      domain.StatusPending,
	}}, metrics, noopLogger{})

	rec := doRequest(t, h, requestBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, metrics.created)
}

func TestCreateBookingHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"garage closed", create_booking.ErrGarageClosed, http.StatusBadRequest},
		{"invalid date", create_booking.ErrInvalidDate, http.StatusBadRequest},
		{"garage not found", create_booking.ErrGarageNotFound, http.StatusNotFound},
		{"vehicle not found", create_booking.ErrVehicleNotFound, http.StatusNotFound},
		{"slot full", create_booking.ErrSlotFull, http.StatusConflict},
		{"internal", create_booking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := &fakeMetrics{}
			h := NewHandler(&fakeUseCase{err: tt.err}, metrics, noopLogger{})

			rec := doRequest(t, h, requestBody)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Zero(t, metrics.created)
		})
	}
}

func TestCreateBookingHandler_SlotFullMetric(t *testing.T) {
	metrics := &fakeMetrics{}
	h := NewHandler(&fakeUseCase{err: create_booking.ErrSlotFull}, metrics, noopLogger{})

	rec := doRequest(t, h, requestBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, metrics.slotFull)
}

func TestCreateBookingHandler_MalformedDate(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, &fakeMetrics{}, noopLogger{})

	rec := doRequest(t, h, `{"garage_id": 1, "vehicle_id": 5, "booking_date": "12.03.2026", "booking_time": "10:00"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
