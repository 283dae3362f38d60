package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/api/middleware"
	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/service/bookings"
	"github.com/autotrack/garage-booking-service/internal/service/bookings/models"
)

// Handler обработчик POST /api/v1/bookings/{bookingID}/cancel
type Handler struct {
	service BookingsService
	metrics Metrics
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика отмены бронирования
func NewHandler(service BookingsService, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle обрабатывает запрос на отмену бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["bookingID"])
	if err != nil {
		handlers.RespondBadRequest(w, "invalid booking ID")
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}

	b, err := h.service.Cancel(r.Context(), &models.CancelBookingRequest{
		BookingID: bookingID,
		UserID:    userID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, bookings.ErrBookingNotFound),
			errors.Is(err, bookings.ErrGarageNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition),
			errors.Is(err, domain.ErrCancellationWindowPassed):
			handlers.RespondConflict(w, err.Error())
		default:
			h.logger.Error("CancelBooking handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncBookingsCancelled(b.GarageID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(b))
}
