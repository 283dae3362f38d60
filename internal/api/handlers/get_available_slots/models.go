package get_available_slots

import (
	"github.com/autotrack/garage-booking-service/internal/domain"
)

// SlotResponse представление доступного слота в API
type SlotResponse struct {
	Time           string `json:"time"` // HH:MM
	AvailableSpots int    `json:"available_spots"`
	TotalSpots     int    `json:"total_spots"`
}

// SlotsResponse модель ответа со списком доступных слотов
type SlotsResponse struct {
	GarageID int64          `json:"garage_id"`
	Date     string         `json:"date"` // YYYY-MM-DD
	Slots    []SlotResponse `json:"slots"`
}

// newSlotsResponse собирает представление слотов для API
func newSlotsResponse(garageID int64, date string, slots []domain.AvailableSlot) SlotsResponse {
	resp := SlotsResponse{
		GarageID: garageID,
		Date:     date,
		Slots:    make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Time:           slot.Time.String(),
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
		})
	}

	return resp
}
