package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/usecase/get_available_slots"
)

// Handler обработчик GET /api/v1/garages/{garageID}/slots?date=YYYY-MM-DD
type Handler struct {
	useCase UseCase
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика получения слотов
func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает запрос на получение доступных слотов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	garageID, err := strconv.ParseInt(mux.Vars(r)["garageID"], 10, 64)
	if err != nil || garageID <= 0 {
		handlers.RespondBadRequest(w, "invalid garage ID")
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, "date query parameter is required")
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		handlers.RespondBadRequest(w, "date must be in YYYY-MM-DD format")
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &get_available_slots.Request{
		GarageID: garageID,
		Date:     date,
	})
	if err != nil {
		if errors.Is(err, get_available_slots.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GetAvailableSlots handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newSlotsResponse(garageID, rawDate, resp.Slots))
}
