package booking_stats

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/api/middleware"
	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/service/stats"
)

// Handler обработчики статистики бронирований
type Handler struct {
	service StatsService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика статистики
func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGarageStats обрабатывает GET /api/v1/garages/{garageID}/bookings/stats.
// Период опционально ограничивается параметрами start_date и end_date.
func (h *Handler) HandleGarageStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	garageID, err := strconv.ParseInt(mux.Vars(r)["garageID"], 10, 64)
	if err != nil || garageID <= 0 {
		handlers.RespondBadRequest(w, "invalid garage ID")
		return
	}

	req := &stats.GarageStatsRequest{
		GarageID: garageID,
		UserID:   userID,
	}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, "start_date must be in YYYY-MM-DD format")
			return
		}
		req.StartDate = &startDate
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, "end_date must be in YYYY-MM-DD format")
			return
		}
		req.EndDate = &endDate
	}

	result, err := h.service.GetGarageStats(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, stats.ErrGarageNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, stats.ErrAccessDenied):
			handlers.RespondForbidden(w, err.Error())
		default:
			h.logger.Error("GarageStats handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newStatsResponse(result))
}

// HandleUserStats обрабатывает GET /api/v1/bookings/stats
func (h *Handler) HandleUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.service.GetUserStats(r.Context(), &stats.UserStatsRequest{UserID: userID})
	if err != nil {
		h.logger.Error("UserStats handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newStatsResponse(result))
}
