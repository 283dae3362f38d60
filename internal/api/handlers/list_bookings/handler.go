package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/api/middleware"
	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/service/bookings"
	"github.com/autotrack/garage-booking-service/internal/service/bookings/models"
)

// Handler обработчик GET /api/v1/bookings.
//
// Поддерживаемые query параметры: garage_id, vehicle_id, status,
// start_date, end_date, upcoming, past. Без garage_id возвращаются
// только собственные бронирования пользователя.
type Handler struct {
	service BookingsService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика списка бронирований
func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает запрос на получение списка бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, err := h.buildRequest(userID, r)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrGarageNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, err.Error())
		default:
			h.logger.Error("ListBookings handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingListResponse(list))
}

// buildRequest разбирает query параметры фильтрации
func (h *Handler) buildRequest(userID int64, r *http.Request) (*models.ListBookingsRequest, error) {
	query := r.URL.Query()

	req := &models.ListBookingsRequest{
		UserID:   userID,
		Upcoming: query.Get("upcoming") == "true",
		Past:     query.Get("past") == "true",
	}

	if raw := query.Get("garage_id"); raw != "" {
		garageID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || garageID <= 0 {
			return nil, errors.New("garage_id must be a positive integer")
		}
		req.GarageID = &garageID
	}

	if raw := query.Get("vehicle_id"); raw != "" {
		vehicleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || vehicleID <= 0 {
			return nil, errors.New("vehicle_id must be a positive integer")
		}
		req.VehicleID = &vehicleID
	}

	if raw := query.Get("status"); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			return nil, errors.New("unknown status value")
		}
		req.Status = &status
	}

	if raw := query.Get("start_date"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New("start_date must be in YYYY-MM-DD format")
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("end_date"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New("end_date must be in YYYY-MM-DD format")
		}
		req.EndDate = &endDate
	}

	return req, nil
}
