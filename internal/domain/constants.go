package domain

// Slot granularity: every window is cut into fixed 30-minute slots.
// A service longer than 30 minutes still occupies a single slot's capacity
// unit; the schedule deliberately does not reserve consecutive slots.
const SlotStepMinutes = 30

// Business validation constants
const (
	MinRating = 1
	MaxRating = 5

	MinBookingsPerSlot = 1
	MaxBookingsPerSlot = 10

	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480

	DefaultDurationMinutes = 60

	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500

	// CancellationCutoff: a booking may be cancelled only while its start
	// is more than this far in the future
	CancellationCutoffHours = 24
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses are the statuses that count against slot capacity
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses are the statuses from which no transition is allowed.
// Terminal bookings free their slot retroactively.
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// AllStatuses lists every valid booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ParseStatus validates a status string against the known statuses
func ParseStatus(s string) (BookingStatus, bool) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
