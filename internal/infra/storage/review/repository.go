package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/pkg/psqlbuilder"
	"github.com/autotrack/garage-booking-service/pkg/txmanager"
)

// uniqueViolation код ошибки PostgreSQL при нарушении UNIQUE ограничения
const uniqueViolation = "23505"

// DBExecutor интерфейс для работы с БД, переиспользуем из txmanager
type DBExecutor = txmanager.DBExecutor

// Repository репозиторий отзывов о бронированиях
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв на бронирование.
// Эксклюзивность "один отзыв на бронирование" обеспечивается ограничением
// UNIQUE(booking_id) в БД, а не предварительной проверкой - гонка двух
// конкурентных созданий разрешается на уровне constraint.
func (r *Repository) Create(ctx context.Context, rv *domain.BookingReview) (*domain.BookingReview, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_reviews").
		Columns(
			"booking_id",
			"rating",
			"comment",
			"would_recommend",
			"service_quality",
			"waiting_time",
			"value_for_money",
		).
		Values(
			rv.BookingID,
			rv.Rating,
			rv.Comment,
			rv.WouldRecommend,
			rv.ServiceQuality,
			rv.WaitingTime,
			rv.ValueForMoney,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rv.CreatedAt = createdAt.Time
	rv.UpdatedAt = updatedAt.Time

	return rv, nil
}

// GetByBookingID получает отзыв по ID бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.BookingReview, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"rating",
		"comment",
		"would_recommend",
		"service_quality",
		"waiting_time",
		"value_for_money",
		"created_at",
		"updated_at",
	).
		From("booking_reviews").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var rv domain.BookingReview
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rv.ID,
		&rv.BookingID,
		&rv.Rating,
		&rv.Comment,
		&rv.WouldRecommend,
		&rv.ServiceQuality,
		&rv.WaitingTime,
		&rv.ValueForMoney,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan review: %v", ErrScanRow, err)
	}

	rv.CreatedAt = createdAt.Time
	rv.UpdatedAt = updatedAt.Time

	return &rv, nil
}

// ListByBookingIDs получает отзывы по списку бронирований.
// Используется агрегатором статистики для расчета среднего рейтинга.
func (r *Repository) ListByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) ([]*domain.BookingReview, error) {
	if len(bookingIDs) == 0 {
		return []*domain.BookingReview{}, nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"rating",
		"comment",
		"would_recommend",
		"service_quality",
		"waiting_time",
		"value_for_money",
		"created_at",
		"updated_at",
	).
		From("booking_reviews").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.BookingReview, 0)
	for rows.Next() {
		var rv domain.BookingReview
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rv.ID,
			&rv.BookingID,
			&rv.Rating,
			&rv.Comment,
			&rv.WouldRecommend,
			&rv.ServiceQuality,
			&rv.WaitingTime,
			&rv.ValueForMoney,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBookingIDs - scan row: %v", ErrScanRow, err)
		}

		rv.CreatedAt = createdAt.Time
		rv.UpdatedAt = updatedAt.Time
		reviews = append(reviews, &rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBookingIDs - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}
