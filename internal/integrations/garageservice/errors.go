package garageservice

import "errors"

var (
	// ErrGarageNotFound возвращается, когда гараж не найден
	ErrGarageNotFound = errors.New("garage not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("garage service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("garageservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("garageservice client: invalid response")
)
