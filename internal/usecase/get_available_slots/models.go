package get_available_slots

import (
	"time"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	GarageID int64     // ID гаража
	Date     time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов.
// Возвращаются только слоты со свободными местами.
type Response struct {
	GarageID int64
	Date     time.Time
	Slots    []domain.AvailableSlot
}
