package ptrecord

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/pgerrors"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const table = "pt_records"

var columns = []string{
	"id",
	"reservation_id",
	"trainer_id",
	"member_id",
	"workout_date",
	"workout_time",
	"duration_minutes",
	"content",
	"member_condition",
	"trainer_notes",
	"is_completed",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей о проведённых PT занятиях
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей PT
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись о занятии
// На reservation_id стоит UNIQUE: вторая запись для того же бронирования возвращает ErrRecordExists
func (r *Repository) Create(ctx context.Context, record *domain.PTRecord) (*domain.PTRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"reservation_id",
			"trainer_id",
			"member_id",
			"workout_date",
			"workout_time",
			"duration_minutes",
			"content",
			"member_condition",
			"trainer_notes",
			"is_completed",
		).
		Values(
			record.ReservationID,
			record.TrainerID,
			record.MemberID,
			record.WorkoutDate,
			record.WorkoutTime,
			record.DurationMinutes,
			record.Content,
			record.MemberCondition,
			record.TrainerNotes,
			record.IsCompleted,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&record.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrRecordExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return record, nil
}

// GetByReservationID получает запись о занятии по ID бронирования
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.PTRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - build select query: %v", ErrBuildQuery, err)
	}

	record, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - scan record: %w", ErrScanRow, err)
	}

	return record, nil
}

// List получает записи о занятиях по фильтру, новые занятия первыми
func (r *Repository) List(ctx context.Context, filter domain.PTRecordFilter) ([]*domain.PTRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.MemberID != nil {
		builder = builder.Where(squirrel.Eq{"member_id": *filter.MemberID})
	}
	if filter.TrainerID != nil {
		builder = builder.Where(squirrel.Eq{"trainer_id": *filter.TrainerID})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"workout_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"workout_date": *filter.EndDate})
	}

	query, args, err := builder.OrderBy("workout_date DESC", "workout_time DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.PTRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan record: %w", ErrScanRow, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*domain.PTRecord, error) {
	var record domain.PTRecord
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&record.ID,
		&record.ReservationID,
		&record.TrainerID,
		&record.MemberID,
		&record.WorkoutDate,
		&record.WorkoutTime,
		&record.DurationMinutes,
		&record.Content,
		&record.MemberCondition,
		&record.TrainerNotes,
		&record.IsCompleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}
