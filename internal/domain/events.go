package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a booking domain event consumed by the notification
// service. The core emits events and never sends email itself.
type EventType string

const (
	EventBookingCreated   EventType = "booking-created"
	EventBookingConfirmed EventType = "booking-confirmed"
	EventBookingCompleted EventType = "booking-completed"
	EventBookingCancelled EventType = "booking-cancelled"
	EventBookingReminder  EventType = "booking-reminder"
)

// BookingEvent carries the booking snapshot the notification service needs
// to render an email without calling back into the core.
type BookingEvent struct {
	Type          EventType
	BookingID     uuid.UUID
	GarageID      int64
	GarageName    string
	CustomerName  string
	CustomerEmail string
	ServiceName   *string
	BookingDate   time.Time
	BookingTime   string
	OccurredAt    time.Time
}

// NewBookingEvent builds an event snapshot from a booking
func NewBookingEvent(eventType EventType, b *Booking, now time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		GarageID:      b.GarageID,
		GarageName:    b.GarageName,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		ServiceName:   b.ServiceName,
		BookingDate:   b.BookingDate,
		BookingTime:   b.BookingTime.String(),
		OccurredAt:    now,
	}
}
