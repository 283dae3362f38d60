package complete_booking

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

// Handler обработчик POST /api/v1/bookings/{bookingID}/complete
type Handler struct {
	service BookingsService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика завершения бронирования
func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает запрос на завершение бронирования
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

	var req CompleteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}

	if req.FinalPrice != nil && *req.FinalPrice < 0 {
		handlers.RespondBadRequest(w, "final_price must not be negative")
		return
	}

	b, err := h.service.Complete(r.Context(), &models.CompleteBookingRequest{
		BookingID:   bookingID,
		UserID:      userID,
		FinalPrice:  req.FinalPrice,
		GarageNotes: req.GarageNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound),
			errors.Is(err, bookings.ErrGarageNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, err.Error())
		case errors.Is(err, domain.ErrInvalidTransition):
			handlers.RespondConflict(w, err.Error())
		default:
			h.logger.Error("CompleteBooking handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(b))
}
