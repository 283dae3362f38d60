package get_review

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/api/handlers/create_review"
	"github.com/autotrack/garage-booking-service/internal/service/reviews"
)

// Handler обработчик GET /api/v1/bookings/{bookingID}/review
type Handler struct {
	service ReviewsService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика получения отзыва
func NewHandler(service ReviewsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает запрос на получение отзыва
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingID"])
	if err != nil {
		handlers.RespondBadRequest(w, "invalid booking ID")
		return
	}

	rv, err := h.service.GetByBookingID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, reviews.ErrReviewNotFound) {
			handlers.RespondNotFound(w, err.Error())
			return
		}
		h.logger.Error("GetReview handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, create_review.NewReviewResponse(rv))
}
