package create_booking

import (
	"context"

	"github.com/autotrack/garage-booking-service/internal/usecase/create_booking"
)

// UseCase интерфейс use case создания бронирования
type UseCase interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Metrics интерфейс бизнес-метрик бронирований
type Metrics interface {
	IncBookingsCreated(garageID int64)
	IncSlotFullRejections(garageID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
