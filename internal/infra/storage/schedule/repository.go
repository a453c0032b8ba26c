package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий расписания тренеров: недельные рабочие часы и блокировки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklySchedule получает рабочие часы тренера на день недели (0 = понедельник)
func (r *Repository) GetWeeklySchedule(ctx context.Context, trainerID int64, dayOfWeek int) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"trainer_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
	).
		From("trainer_weekly_schedules").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.WeeklySchedule
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.TrainerID,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.IsAvailable,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - scan schedule: %w", ErrScanRow, err)
	}

	return &s, nil
}

// ListWeeklyByTrainer получает всю недельную сетку тренера, упорядоченную по дню недели
func (r *Repository) ListWeeklyByTrainer(ctx context.Context, trainerID int64) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"trainer_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
	).
		From("trainer_weekly_schedules").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyByTrainer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyByTrainer - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0)
	for rows.Next() {
		var s domain.WeeklySchedule
		if err := rows.Scan(&s.ID, &s.TrainerID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.IsAvailable); err != nil {
			return nil, fmt.Errorf("%w: ListWeeklyByTrainer - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyByTrainer - rows error: %w", ErrScanRow, err)
	}

	return schedules, nil
}

// GetBlockedIntervals получает блокировки тренера на конкретную дату
func (r *Repository) GetBlockedIntervals(ctx context.Context, trainerID int64, date time.Time) ([]*domain.BlockedInterval, error) {
	return r.ListBlockedIntervals(ctx, trainerID, date, date)
}

// ListBlockedIntervals получает блокировки тренера за период [from, to] включительно
func (r *Repository) ListBlockedIntervals(ctx context.Context, trainerID int64, from, to time.Time) ([]*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"trainer_id",
		"blocked_date",
		"start_time",
		"end_time",
		"reason",
	).
		From("trainer_blocked_intervals").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		Where(squirrel.GtOrEq{"blocked_date": from}).
		Where(squirrel.LtOrEq{"blocked_date": to}).
		OrderBy("blocked_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]*domain.BlockedInterval, 0)
	for rows.Next() {
		var b domain.BlockedInterval
		if err := rows.Scan(&b.ID, &b.TrainerID, &b.Date, &b.StartTime, &b.EndTime, &b.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedIntervals - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedIntervals - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// UpsertWeeklySchedule создает или заменяет рабочие часы тренера на день недели
func (r *Repository) UpsertWeeklySchedule(ctx context.Context, ws *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("trainer_weekly_schedules").
		Columns("trainer_id", "day_of_week", "start_time", "end_time", "is_available").
		Values(ws.TrainerID, ws.DayOfWeek, ws.StartTime, ws.EndTime, ws.IsAvailable).
		Suffix(`ON CONFLICT (trainer_id, day_of_week) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_available = EXCLUDED.is_available,
			updated_at = NOW()
			RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWeeklySchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&ws.ID); err != nil {
		return nil, fmt.Errorf("%w: UpsertWeeklySchedule - execute insert: %w", ErrExecQuery, err)
	}

	return ws, nil
}

// CreateBlockedInterval добавляет блокировку тренера
func (r *Repository) CreateBlockedInterval(ctx context.Context, b *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("trainer_blocked_intervals").
		Columns("trainer_id", "blocked_date", "start_time", "end_time", "reason").
		Values(b.TrainerID, b.Date, b.StartTime, b.EndTime, b.Reason).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedInterval - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedInterval - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// DeleteBlockedInterval удаляет блокировку тренера
func (r *Repository) DeleteBlockedInterval(ctx context.Context, trainerID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("trainer_blocked_intervals").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedInterval - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedInterval - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedInterval - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedIntervalNotFound
	}

	return nil
}
