package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a garage appointment.
// Customer contact details and garage/service names are snapshotted at booking
// time so the row stays meaningful if the referenced records change later.
type Booking struct {
	ID        uuid.UUID
	UserID    int64
	GarageID  int64
	VehicleID int64
	ServiceID *uuid.UUID

	BookingDate     time.Time
	BookingTime     types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Customer snapshot, independent of the live user record
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Notes         *string

	// Internal notes, visible to the garage only
	GarageNotes *string

	// Denormalized data for history and stats
	GarageName  string
	ServiceName *string

	EstimatedPrice *float64
	FinalPrice     *float64
	PaymentStatus  PaymentStatus

	// Milestone timestamps: set exactly when the booking passes through
	// the corresponding state, via the transition methods below.
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CancellationReason *string
	CancelledBy        *int64

	ReminderSent   bool
	ReminderSentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartDateTime combines the booking date and time into a single instant
// in the given location.
func (b *Booking) StartDateTime(loc *time.Location) time.Time {
	minutes, err := b.BookingTime.Minutes()
	if err != nil {
		minutes = 0
	}
	d := b.BookingDate
	return time.Date(d.Year(), d.Month(), d.Day(), minutes/60, minutes%60, 0, 0, loc)
}

// IsOccupying returns true if the booking counts against slot capacity
func (b *Booking) IsOccupying() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// IsTerminal returns true if no further transition is allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// IsPast returns true if the booking start time is before now
func (b *Booking) IsPast(now time.Time) bool {
	return b.StartDateTime(now.Location()).Before(now)
}

// IsUpcoming returns true if the booking starts within the next 7 days
func (b *Booking) IsUpcoming(now time.Time) bool {
	start := b.StartDateTime(now.Location())
	return start.After(now) && start.Before(now.AddDate(0, 0, 7))
}

// IsToday returns true if the booking is scheduled for today
func (b *Booking) IsToday(now time.Time) bool {
	y1, m1, d1 := b.BookingDate.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CanCancel returns true if the booking may still be cancelled:
// the status is not terminal and the appointment starts more than
// 24 hours from now.
func (b *Booking) CanCancel(now time.Time) bool {
	if b.IsTerminal() {
		return false
	}
	return b.StartDateTime(now.Location()).After(now.Add(24 * time.Hour))
}

// Confirm moves the booking from pending to confirmed and stamps ConfirmedAt
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return transitionError(b.Status, StatusConfirmed)
	}
	b.Status = StatusConfirmed
	b.ConfirmedAt = &now
	return nil
}

// Start moves the booking from confirmed to in_progress
func (b *Booking) Start(now time.Time) error {
	if b.Status != StatusConfirmed {
		return transitionError(b.Status, StatusInProgress)
	}
	b.Status = StatusInProgress
	return nil
}

// Complete moves the booking from in_progress to completed and stamps
// CompletedAt. When finalPrice is nil the estimated price becomes final.
func (b *Booking) Complete(finalPrice *float64, now time.Time) error {
	if b.Status != StatusInProgress {
		return transitionError(b.Status, StatusCompleted)
	}
	b.Status = StatusCompleted
	b.CompletedAt = &now
	if finalPrice != nil {
		b.FinalPrice = finalPrice
	} else {
		b.FinalPrice = b.EstimatedPrice
	}
	return nil
}

// Cancel moves the booking to cancelled, recording the reason and the actor.
// Rejected when the status is terminal or when the appointment starts in
// 24 hours or less.
func (b *Booking) Cancel(reason string, cancelledBy *int64, now time.Time) error {
	if b.IsTerminal() {
		return transitionError(b.Status, StatusCancelled)
	}
	if !b.CanCancel(now) {
		return ErrCancellationWindowPassed
	}
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.CancellationReason = &reason
	b.CancelledBy = cancelledBy
	return nil
}

// MarkNoShow moves the booking to no_show. Only allowed on the day of the
// appointment, from any occupying status.
func (b *Booking) MarkNoShow(now time.Time) error {
	if !b.IsOccupying() {
		return transitionError(b.Status, StatusNoShow)
	}
	if !b.IsToday(now) {
		return ErrNotToday
	}
	b.Status = StatusNoShow
	return nil
}

// BookingsFilter filters booking lists.
// Upcoming selects bookings dated today or later in pending/confirmed status;
// Past selects bookings dated before today or in a terminal status.
type BookingsFilter struct {
	UserID    *int64
	GarageID  *int64
	VehicleID *int64
	Status    *BookingStatus
	StartDate *time.Time
	EndDate   *time.Time
	Upcoming  bool
	Past      bool
}
