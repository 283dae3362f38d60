package complete_booking

// CompleteBookingRequest модель HTTP запроса на завершение бронирования.
// Тело опционально: без него итоговой стоимостью становится предварительная.
type CompleteBookingRequest struct {
	FinalPrice  *float64 `json:"final_price,omitempty"`
	GarageNotes *string  `json:"garage_notes,omitempty"`
}
