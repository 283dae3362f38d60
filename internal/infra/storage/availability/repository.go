package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/pkg/psqlbuilder"
	"github.com/autotrack/garage-booking-service/pkg/txmanager"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

// Repository репозиторий окон доступности гаражей.
// Окна создаются и редактируются персоналом гаража вне этого сервиса,
// ядро бронирования только читает их.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByGarage возвращает все активные окна гаража,
// отсортированные по дню недели и времени начала
func (r *Repository) ListByGarage(ctx context.Context, garageID int64) ([]*domain.GarageAvailability, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"garage_id",
		"weekday",
		"start_time",
		"end_time",
		"max_bookings_per_slot",
		"is_active",
	).
		From("garage_availability").
		Where(squirrel.Eq{"garage_id": garageID, "is_active": true}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByGarage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByGarage - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// ListForWeekday возвращает активные окна гаража на указанный день недели,
// отсортированные по времени начала. Пустой результат означает, что гараж
// закрыт в этот день - это не ошибка.
func (r *Repository) ListForWeekday(ctx context.Context, garageID int64, weekday int) ([]*domain.GarageAvailability, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"garage_id",
		"weekday",
		"start_time",
		"end_time",
		"max_bookings_per_slot",
		"is_active",
	).
		From("garage_availability").
		Where(squirrel.Eq{"garage_id": garageID, "weekday": weekday, "is_active": true}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// GetWindowCovering возвращает активное окно гаража, покрывающее указанное
// время: start_time <= t < end_time.
//
// Внутри транзакции добавляет FOR UPDATE - блокировка строки окна служит
// точкой сериализации допуска бронирований на (гараж, дата, время):
// конкурирующие создания одного слота выстраиваются за этой блокировкой,
// и пересчет занятости видит уже зафиксированные вставки.
func (r *Repository) GetWindowCovering(ctx context.Context, garageID int64, weekday int, t types.TimeString) (*domain.GarageAvailability, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"garage_id",
		"weekday",
		"start_time",
		"end_time",
		"max_bookings_per_slot",
		"is_active",
	).
		From("garage_availability").
		Where(squirrel.Eq{"garage_id": garageID, "weekday": weekday, "is_active": true}).
		Where(squirrel.LtOrEq{"start_time": t}).
		Where(squirrel.Gt{"end_time": t})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowCovering - build select query: %v", ErrBuildQuery, err)
	}

	var window domain.GarageAvailability
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&window.GarageID,
		&window.Weekday,
		&window.StartTime,
		&window.EndTime,
		&window.MaxBookingsPerSlot,
		&window.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowCovering - scan window: %v", ErrScanRow, err)
	}

	return &window, nil
}

// scanWindows сканирует результаты запроса в слайс окон доступности
func scanWindows(rows *sql.Rows) ([]*domain.GarageAvailability, error) {
	windows := make([]*domain.GarageAvailability, 0)

	for rows.Next() {
		var window domain.GarageAvailability

		err := rows.Scan(
			&window.ID,
			&window.GarageID,
			&window.Weekday,
			&window.StartTime,
			&window.EndTime,
			&window.MaxBookingsPerSlot,
			&window.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
