package booking_stats

import (
	"context"

	"github.com/autotrack/garage-booking-service/internal/service/stats"
)

// StatsService интерфейс агрегатора статистики
type StatsService interface {
	GetGarageStats(ctx context.Context, req *stats.GarageStatsRequest) (*stats.Stats, error)
	GetUserStats(ctx context.Context, req *stats.UserStatsRequest) (*stats.Stats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
