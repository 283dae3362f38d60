package handlers

import (
	"time"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// BookingResponse представление бронирования в API
type BookingResponse struct {
	ID        string  `json:"id"`
	UserID    int64   `json:"user_id"`
	GarageID  int64   `json:"garage_id"`
	VehicleID int64   `json:"vehicle_id"`
	ServiceID *string `json:"service_id,omitempty"`

	BookingDate     string `json:"booking_date"`
	BookingTime     string `json:"booking_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`

	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail string  `json:"customer_email"`
	Notes         *string `json:"notes,omitempty"`
	GarageNotes   *string `json:"garage_notes,omitempty"`

	GarageName  string  `json:"garage_name"`
	ServiceName *string `json:"service_name,omitempty"`

	EstimatedPrice *float64 `json:"estimated_price,omitempty"`
	FinalPrice     *float64 `json:"final_price,omitempty"`
	PaymentStatus  string   `json:"payment_status"`

	ConfirmedAt *string `json:"confirmed_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
	CancelledAt *string `json:"cancelled_at,omitempty"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledBy        *int64  `json:"cancelled_by,omitempty"`

	ReminderSent bool `json:"reminder_sent"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewBookingResponse собирает представление бронирования для API
func NewBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                 b.ID.String(),
		UserID:             b.UserID,
		GarageID:           b.GarageID,
		VehicleID:          b.VehicleID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		BookingTime:        b.BookingTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		CustomerEmail:      b.CustomerEmail,
		Notes:              b.Notes,
		GarageNotes:        b.GarageNotes,
		GarageName:         b.GarageName,
		ServiceName:        b.ServiceName,
		EstimatedPrice:     b.EstimatedPrice,
		FinalPrice:         b.FinalPrice,
		PaymentStatus:      string(b.PaymentStatus),
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		ReminderSent:       b.ReminderSent,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if b.ServiceID != nil {
		id := b.ServiceID.String()
		resp.ServiceID = &id
	}
	resp.ConfirmedAt = formatTimePtr(b.ConfirmedAt)
	resp.CompletedAt = formatTimePtr(b.CompletedAt)
	resp.CancelledAt = formatTimePtr(b.CancelledAt)

	return resp
}

// NewBookingListResponse собирает представление списка бронирований
func NewBookingListResponse(list []*domain.Booking) []BookingResponse {
	resp := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, NewBookingResponse(b))
	}
	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
