package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/pkg/types"
)

// GarageAvailability is one recurring weekly open window for a garage.
// Rows are unique on (garage, weekday, start time) and are managed by garage
// staff outside this service; the scheduling core treats them as read-only.
type GarageAvailability struct {
	ID                 uuid.UUID
	GarageID           int64
	Weekday            int // 0 = Monday .. 6 = Sunday
	StartTime          types.TimeString
	EndTime            types.TimeString
	MaxBookingsPerSlot int
	IsActive           bool
}

// Covers returns true if t falls inside the window: start <= t < end
func (a *GarageAvailability) Covers(t types.TimeString) bool {
	return !t.IsBefore(a.StartTime) && t.IsBefore(a.EndTime)
}

// WeekdayFromDate converts time.Weekday (Sunday=0) to the stored
// convention (Monday=0 .. Sunday=6).
func WeekdayFromDate(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
