package changelog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository append-only журнал изменений бронирований
// Записи только добавляются, UPDATE и DELETE не предусмотрены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал
func (r *Repository) Append(ctx context.Context, entry *domain.ChangeLogEntry) (*domain.ChangeLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var previous sql.NullString
	if entry.PreviousStatus != "" {
		previous = sql.NullString{String: string(entry.PreviousStatus), Valid: true}
	}

	query, args, err := psqlbuilder.Insert("reservation_change_logs").
		Columns(
			"reservation_id",
			"change_type",
			"changed_by",
			"previous_status",
			"new_status",
			"reason",
		).
		Values(
			entry.ReservationID,
			entry.ChangeType,
			entry.ChangedBy,
			previous,
			entry.NewStatus,
			entry.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	return entry, nil
}

// ListByReservation возвращает журнал бронирования, новые записи первыми
func (r *Repository) ListByReservation(ctx context.Context, reservationID int64) ([]*domain.ChangeLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"change_type",
		"changed_by",
		"previous_status",
		"new_status",
		"reason",
		"created_at",
	).
		From("reservation_change_logs").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.ChangeLogEntry, 0)
	for rows.Next() {
		var entry domain.ChangeLogEntry
		var previous sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.ReservationID,
			&entry.ChangeType,
			&entry.ChangedBy,
			&previous,
			&entry.NewStatus,
			&entry.Reason,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByReservation - scan row: %v", ErrScanRow, err)
		}

		entry.PreviousStatus = domain.ReservationStatus(previous.String)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}
