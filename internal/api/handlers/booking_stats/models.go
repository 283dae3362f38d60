package booking_stats

import (
	"github.com/autotrack/garage-booking-service/internal/service/stats"
)

// StatsResponse представление статистики бронирований в API
type StatsResponse struct {
	TotalBookings int            `json:"total_bookings"`
	ByStatus      map[string]int `json:"by_status"`
	Upcoming7Days int            `json:"upcoming_7_days"`
	Today         int            `json:"today"`
	Revenue       float64        `json:"revenue"`
	AverageRating *float64       `json:"average_rating,omitempty"`
	ByService     map[string]int `json:"by_service"`
	ByGarage      map[string]int `json:"by_garage"`
}

// newStatsResponse собирает представление статистики для API
func newStatsResponse(s *stats.Stats) StatsResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, count := range s.ByStatus {
		byStatus[string(status)] = count
	}

	return StatsResponse{
		TotalBookings: s.TotalBookings,
		ByStatus:      byStatus,
		Upcoming7Days: s.Upcoming7Days,
		Today:         s.Today,
		Revenue:       s.Revenue,
		AverageRating: s.AverageRating,
		ByService:     s.ByService,
		ByGarage:      s.ByGarage,
	}
}
