package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

// Customer контактные данные клиента, снимок на момент бронирования
type Customer struct {
	Name  string
	Phone string
	Email string
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя из слоя аутентификации
	GarageID  int64            // ID гаража
	VehicleID int64            // ID автомобиля пользователя
	ServiceID *uuid.UUID       // ID услуги (опционально)
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота, например "10:00"
	Customer  Customer         // Контакты клиента
	Notes     *string          // Заметки клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
