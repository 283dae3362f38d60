package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
)

// GetBookingRequest запрос получения бронирования
type GetBookingRequest struct {
	BookingID uuid.UUID
	UserID    int64
}

// ListBookingsRequest запрос списка бронирований.
// GarageID заполняется для менеджерского представления, иначе
// список ограничивается собственными бронированиями пользователя.
type ListBookingsRequest struct {
	UserID    int64
	GarageID  *int64
	VehicleID *int64
	Status    *domain.BookingStatus
	StartDate *time.Time
	EndDate   *time.Time
	Upcoming  bool
	Past      bool
}

// ConfirmBookingRequest запрос подтверждения бронирования менеджером
type ConfirmBookingRequest struct {
	BookingID uuid.UUID
	UserID    int64
}

// StartBookingRequest запрос перевода бронирования в работу
type StartBookingRequest struct {
	BookingID uuid.UUID
	UserID    int64
}

// CompleteBookingRequest запрос завершения бронирования.
// FinalPrice опциональна - при отсутствии берется предварительная оценка.
type CompleteBookingRequest struct {
	BookingID   uuid.UUID
	UserID      int64
	FinalPrice  *float64
	GarageNotes *string
}

// CancelBookingRequest запрос отмены бронирования
type CancelBookingRequest struct {
	BookingID uuid.UUID
	UserID    int64
	Reason    *string
}

// MarkNoShowRequest запрос отметки неявки клиента
type MarkNoShowRequest struct {
	BookingID uuid.UUID
	UserID    int64
}
