package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/pkg/psqlbuilder"
	"github.com/autotrack/garage-booking-service/pkg/txmanager"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

// bookingColumns полный набор колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"user_id",
	"garage_id",
	"vehicle_id",
	"service_id",
	"booking_date",
	"booking_time",
	"duration_minutes",
	"status",
	"customer_name",
	"customer_phone",
	"customer_email",
	"notes",
	"garage_notes",
	"garage_name",
	"service_name",
	"estimated_price",
	"final_price",
	"payment_status",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
	"cancellation_reason",
	"cancelled_by",
	"reminder_sent",
	"reminder_sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её - создание
// при допуске выполняется в одной сериализуемой транзакции с проверкой
// занятости слота.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"garage_id",
			"vehicle_id",
			"service_id",
			"booking_date",
			"booking_time",
			"duration_minutes",
			"status",
			"customer_name",
			"customer_phone",
			"customer_email",
			"notes",
			"garage_notes",
			"garage_name",
			"service_name",
			"estimated_price",
			"payment_status",
		).
		Values(
			b.UserID,
			b.GarageID,
			b.VehicleID,
			b.ServiceID,
			b.BookingDate,
			b.BookingTime,
			b.DurationMinutes,
			b.Status,
			b.CustomerName,
			b.CustomerPhone,
			b.CustomerEmail,
			b.Notes,
			b.GarageNotes,
			b.GarageName,
			b.ServiceName,
			b.EstimatedPrice,
			b.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// List получает бронирования с гибкой фильтрацией.
// Поддерживает фильтры по пользователю, гаражу, автомобилю, статусу, периоду,
// а также флаги Upcoming (дата >= сегодня, статус pending/confirmed) и
// Past (дата < сегодня либо терминальный статус). Для флагов дата "сегодня"
// передается через now.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter, now time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.GarageID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"garage_id": *filter.GarageID})
	}
	if filter.VehicleID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vehicle_id": *filter.VehicleID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if filter.Upcoming {
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"booking_date": today}).
			Where(squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)}})
	}

	if filter.Past {
		terminal := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminal[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Lt{"booking_date": today},
			squirrel.Eq{"status": terminal},
		})
	}

	if filter.Upcoming {
		selectBuilder = selectBuilder.OrderBy("booking_date ASC, booking_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, booking_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountOccupying подсчитывает бронирования, занимающие слот
// (гараж, дата, время) - только статусы pending, confirmed, in_progress.
// Завершенные, отмененные и no-show бронирования освобождают слот.
func (r *Repository) CountOccupying(ctx context.Context, garageID int64, date time.Time, t types.TimeString) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	occupying := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		occupying[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"garage_id":    garageID,
			"booking_date": date,
			"booking_time": t,
			"status":       occupying,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountOccupying - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOccupying - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountOccupyingForDay подсчитывает занимающие бронирования по каждому времени
// слота за день одним запросом. Используется при выдаче списка слотов, чтобы
// не делать COUNT на каждый слот.
func (r *Repository) CountOccupyingForDay(ctx context.Context, garageID int64, date time.Time) (map[types.TimeString]int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	occupying := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		occupying[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("booking_time", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"garage_id":    garageID,
			"booking_date": date,
			"status":       occupying,
		}).
		GroupBy("booking_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountOccupyingForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountOccupyingForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var t types.TimeString
		var count int
		if err := rows.Scan(&t, &count); err != nil {
			return nil, fmt.Errorf("%w: CountOccupyingForDay - scan row: %v", ErrScanRow, err)
		}
		counts[t] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountOccupyingForDay - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// UpdateLifecycle сохраняет результат перехода состояния: статус, milestone
// timestamps, данные отмены и финальную цену. Переход валидируется доменной
// моделью до вызова; запись - compare-and-set по fromStatus, чтобы переход,
// зафиксированный конкурентно после чтения, не был молча перезаписан.
func (r *Repository) UpdateLifecycle(ctx context.Context, b *domain.Booking, fromStatus domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", b.Status).
		Set("confirmed_at", b.ConfirmedAt).
		Set("completed_at", b.CompletedAt).
		Set("cancelled_at", b.CancelledAt).
		Set("cancellation_reason", b.CancellationReason).
		Set("cancelled_by", b.CancelledBy).
		Set("final_price", b.FinalPrice).
		Set("payment_status", b.PaymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID, "status": fromStatus}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLifecycle - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLifecycle - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLifecycle - get rows affected: %v", ErrExecQuery, err)
	}

	// 0 затронутых строк: либо статус уже не fromStatus (конкурентный
	// переход), либо бронирования нет - различаем через GetByID
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, b.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: UpdateLifecycle - status is no longer %s", ErrStatusConflict, fromStatus)
	}

	return nil
}

// ListDueReminders возвращает подтвержденные бронирования на указанную дату,
// по которым еще не отправлено напоминание
func (r *Repository) ListDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"booking_date":  date,
			"status":        domain.StatusConfirmed,
			"reminder_sent": false,
		}).
		OrderBy("booking_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MarkReminderSent отмечает, что напоминание по бронированию отправлено.
// Идемпотентна: повторный вызов по уже отмеченному бронированию - no-op.
func (r *Repository) MarkReminderSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent", true).
		Set("reminder_sent_at", sentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "reminder_sent": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - get rows affected: %v", ErrExecQuery, err)
	}

	// 0 затронутых строк: либо напоминание уже отмечено (идемпотентный
	// повтор), либо бронирования нет - различаем через GetByID
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&b.ID,
		&b.UserID,
		&b.GarageID,
		&b.VehicleID,
		&b.ServiceID,
		&b.BookingDate,
		&b.BookingTime,
		&b.DurationMinutes,
		&b.Status,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.CustomerEmail,
		&b.Notes,
		&b.GarageNotes,
		&b.GarageName,
		&b.ServiceName,
		&b.EstimatedPrice,
		&b.FinalPrice,
		&b.PaymentStatus,
		&b.ConfirmedAt,
		&b.CompletedAt,
		&b.CancelledAt,
		&b.CancellationReason,
		&b.CancelledBy,
		&b.ReminderSent,
		&b.ReminderSentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
