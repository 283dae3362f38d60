package list_availability

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
)

// Handler обработчик GET /api/v1/garages/{garageID}/availability
type Handler struct {
	service AvailabilityService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика расписания доступности
func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает запрос расписания доступности гаража
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	garageID, err := strconv.ParseInt(mux.Vars(r)["garageID"], 10, 64)
	if err != nil || garageID <= 0 {
		handlers.RespondBadRequest(w, "invalid garage ID")
		return
	}

	windows, err := h.service.ListByGarage(r.Context(), garageID)
	if err != nil {
		h.logger.Error("ListAvailability handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, newWindowsResponse(windows))
}
