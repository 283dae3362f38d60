package create_booking

import "errors"

var (
	// ErrGarageNotFound возвращается, когда гараж не найден
	ErrGarageNotFound = errors.New("create_booking: garage not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не существует
	// или не принадлежит пользователю
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrGarageClosed возвращается, когда ни одно активное окно доступности
	// не покрывает запрошенные дату и время
	ErrGarageClosed = errors.New("create_booking: garage is closed at this date and time")

	// ErrSlotFull возвращается, когда все места слота заняты
	ErrSlotFull = errors.New("create_booking: slot is fully booked")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
