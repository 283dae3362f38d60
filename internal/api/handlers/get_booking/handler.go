package get_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/api/middleware"
	"github.com/autotrack/garage-booking-service/internal/service/bookings"
	"github.com/autotrack/garage-booking-service/internal/service/bookings/models"
)

// Handler обработчик GET /api/v1/bookings/{bookingID}
type Handler struct {
	service BookingsService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика получения бронирования
func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает запрос на получение бронирования
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

	b, err := h.service.GetByID(r.Context(), &models.GetBookingRequest{
		BookingID: bookingID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, err.Error())
		default:
			h.logger.Error("GetBooking handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(b))
}
