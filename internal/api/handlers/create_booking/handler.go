package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/api/middleware"
	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/usecase/create_booking"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

// Handler обработчик POST /api/v1/bookings
type Handler struct {
	useCase UseCase
	metrics Metrics
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика создания бронирования
func NewHandler(useCase UseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle обрабатывает запрос на создание бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}

	ucReq, err := h.buildRequest(userID, &req)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		h.respondError(w, req.GarageID, err)
		return
	}

	h.metrics.IncBookingsCreated(req.GarageID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewBookingResponse(resp.Booking))
}

// buildRequest разбирает HTTP модель в модель use case
func (h *Handler) buildRequest(userID int64, req *CreateBookingRequest) (*create_booking.Request, error) {
	date, err := time.Parse(domain.DateFormat, req.BookingDate)
	if err != nil {
		return nil, errors.New("booking_date must be in YYYY-MM-DD format")
	}

	startTime, err := types.NewTimeStringFromString(req.BookingTime)
	if err != nil {
		return nil, errors.New("booking_time must be in HH:MM format")
	}

	var serviceID *uuid.UUID
	if req.ServiceID != nil {
		id, err := uuid.Parse(*req.ServiceID)
		if err != nil {
			return nil, errors.New("service_id must be a valid UUID")
		}
		serviceID = &id
	}

	return &create_booking.Request{
		UserID:    userID,
		GarageID:  req.GarageID,
		VehicleID: req.VehicleID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
		Customer: create_booking.Customer{
			Name:  req.CustomerName,
			Phone: req.CustomerPhone,
			Email: req.CustomerEmail,
		},
		Notes: req.Notes,
	}, nil
}

func (h *Handler) respondError(w http.ResponseWriter, garageID int64, err error) {
	switch {
	case errors.Is(err, create_booking.ErrInvalidInput),
		errors.Is(err, create_booking.ErrInvalidDate),
		errors.Is(err, create_booking.ErrGarageClosed):
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, create_booking.ErrGarageNotFound),
		errors.Is(err, create_booking.ErrServiceNotFound),
		errors.Is(err, create_booking.ErrVehicleNotFound):
		handlers.RespondNotFound(w, err.Error())
	case errors.Is(err, create_booking.ErrSlotFull):
		h.metrics.IncSlotFullRejections(garageID)
		handlers.RespondConflict(w, err.Error())
	default:
		h.logger.Error("CreateBooking handler: %v", err)
		handlers.RespondInternalError(w)
	}
}
