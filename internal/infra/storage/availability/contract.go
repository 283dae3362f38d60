package availability

import "github.com/autotrack/garage-booking-service/pkg/txmanager"

// DBExecutor интерфейс для работы с БД, переиспользуем из txmanager
type DBExecutor = txmanager.DBExecutor
