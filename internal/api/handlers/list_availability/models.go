package list_availability

import (
	"github.com/autotrack/garage-booking-service/internal/domain"
)

// WindowResponse представление окна доступности в API
type WindowResponse struct {
	ID                 string `json:"id"`
	GarageID           int64  `json:"garage_id"`
	Weekday            int    `json:"weekday"` // 0=понедельник .. 6=воскресенье
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	MaxBookingsPerSlot int    `json:"max_bookings_per_slot"`
}

// newWindowsResponse собирает представление окон доступности для API
func newWindowsResponse(windows []*domain.GarageAvailability) []WindowResponse {
	resp := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		resp = append(resp, WindowResponse{
			ID:                 w.ID.String(),
			GarageID:           w.GarageID,
			Weekday:            w.Weekday,
			StartTime:          w.StartTime.String(),
			EndTime:            w.EndTime.String(),
			MaxBookingsPerSlot: w.MaxBookingsPerSlot,
		})
	}
	return resp
}
