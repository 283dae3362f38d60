package cancel_booking

// CancelBookingRequest модель HTTP запроса на отмену бронирования
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}
