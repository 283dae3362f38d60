package create_booking

// CreateBookingRequest модель HTTP запроса на создание бронирования
type CreateBookingRequest struct {
	GarageID      int64   `json:"garage_id"`
	VehicleID     int64   `json:"vehicle_id"`
	ServiceID     *string `json:"service_id,omitempty"`
	BookingDate   string  `json:"booking_date"` // YYYY-MM-DD
	BookingTime   string  `json:"booking_time"` // HH:MM
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail string  `json:"customer_email"`
	Notes         *string `json:"notes,omitempty"`
}
