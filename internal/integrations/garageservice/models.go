package garageservice

import "github.com/google/uuid"

// Garage модель гаража из GarageService
type Garage struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone,omitempty"`
	Address    string  `json:"address"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`

	// ManagerIDs пользователи с правами управления бронированиями гаража
	ManagerIDs []int64 `json:"manager_ids"`
}

// IsManager проверяет, входит ли пользователь в список менеджеров гаража
func (g *Garage) IsManager(userID int64) bool {
	for _, id := range g.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Service модель услуги гаража из GarageService.
// Длительность и цена копируются в бронирование при создании.
type Service struct {
	ID              uuid.UUID `json:"id"`
	GarageID        int64     `json:"garage_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"` // maintenance/repair/diagnostic/tire/bodywork/other
	DurationMinutes int       `json:"duration_minutes"`
	Price           *float64  `json:"price,omitempty"`
	IsActive        bool      `json:"is_active"`
}

// ErrorResponse модель ошибки от GarageService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
