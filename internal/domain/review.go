package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingReview is the customer's one-to-one review of a completed booking
type BookingReview struct {
	ID             uuid.UUID
	BookingID      uuid.UUID
	Rating         int // 1..5
	Comment        string
	WouldRecommend bool

	// Optional detailed sub-ratings, 1..5 each
	ServiceQuality *int
	WaitingTime    *int
	ValueForMoney  *int

	CreatedAt time.Time
	UpdatedAt time.Time
}
