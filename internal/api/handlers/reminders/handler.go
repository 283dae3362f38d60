package reminders

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/autotrack/garage-booking-service/internal/api/handlers"
	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/internal/service/bookings"
)

// Handler обработчики внутренних endpoints напоминаний.
// Используются внешними джобами рассылки, аутентификация пользователя
// не требуется - доступ ограничен на уровне сети.
type Handler struct {
	service BookingsService
	logger  Logger
}

// NewHandler создает новый экземпляр обработчика напоминаний
func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleListDue обрабатывает GET /internal/bookings/reminders?date=YYYY-MM-DD
func (h *Handler) HandleListDue(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.service.ListDueReminders(r.Context(), date)
	if err != nil {
		h.logger.Error("ListDueReminders handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingListResponse(list))
}

// HandleMarkSent обрабатывает POST /internal/bookings/{bookingID}/reminder-sent.
// Endpoint идемпотентен: повторный вызов возвращает 204.
func (h *Handler) HandleMarkSent(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingID"])
	if err != nil {
		handlers.RespondBadRequest(w, "invalid booking ID")
		return
	}

	if err := h.service.MarkReminderSent(r.Context(), bookingID); err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			handlers.RespondNotFound(w, err.Error())
			return
		}
		h.logger.Error("MarkReminderSent handler: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
