package create_review

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/api/middleware"
	"github.com/autotrack/garage-booking-service/internal/service/reviews"
)

// Handler обработчик POST /api/v1/bookings/{bookingID}/review
type Handler struct {
	service ReviewsService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика создания отзыва
func NewHandler(service ReviewsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает запрос на создание отзыва
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

	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}

	rv, err := h.service.Create(r.Context(), &reviews.CreateReviewRequest{
		BookingID:      bookingID,
		UserID:         userID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		WouldRecommend: req.WouldRecommend,
		ServiceQuality: req.ServiceQuality,
		WaitingTime:    req.WaitingTime,
		ValueForMoney:  req.ValueForMoney,
	})
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidRating):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, reviews.ErrBookingNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, reviews.ErrAccessDenied):
			handlers.RespondForbidden(w, err.Error())
		case errors.Is(err, reviews.ErrBookingNotCompleted),
			errors.Is(err, reviews.ErrAlreadyReviewed):
			handlers.RespondConflict(w, err.Error())
		default:
			h.logger.Error("CreateReview handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, NewReviewResponse(rv))
}
