package domain

import (
	"time"

	"github.com/autotrack/garage-booking-service/pkg/types"
)

// AvailableSlot is a derived 30-minute time slot with its remaining capacity.
// Slots are recomputed on every query and are never persisted.
type AvailableSlot struct {
	Date           time.Time
	Time           types.TimeString
	GarageID       int64
	AvailableSpots int
	TotalSpots     int
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all spots available
func (s *AvailableSlot) IsPartiallyAvailable() bool {
	return s.AvailableSpots > 0 && s.AvailableSpots < s.TotalSpots
}
