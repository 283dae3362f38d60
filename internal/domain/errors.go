package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a lifecycle transition is
	// attempted from a state that does not allow it
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrCancellationWindowPassed is returned when a booking starts in
	// 24 hours or less and can no longer be cancelled
	ErrCancellationWindowPassed = errors.New("booking starts in less than 24 hours and cannot be cancelled")

	// ErrNotToday is returned when marking a no-show on a booking that is
	// not scheduled for the current day
	ErrNotToday = errors.New("only today's bookings can be marked as no-show")
)

func transitionError(from, to BookingStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
