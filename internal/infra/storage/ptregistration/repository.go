package ptregistration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"member_id",
	"trainer_id",
	"total_sessions",
	"remaining_sessions",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий пакетов PT занятий
// Сервис бронирований читает остаток занятий и списывает по одному при завершении
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов PT
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пакет PT занятий по ID
// Внутри транзакции строка блокируется (FOR SHARE), чтобы остаток не изменился до commit
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PTRegistration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("pt_registrations").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR SHARE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reg, err := scanRegistration(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan registration: %w", ErrScanRow, err)
	}

	return reg, nil
}

// DecrementRemainingSessions списывает одно занятие, не опуская остаток ниже нуля
func (r *Repository) DecrementRemainingSessions(ctx context.Context, id int64) (*domain.PTRegistration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("pt_registrations").
		Set("remaining_sessions", squirrel.Expr("GREATEST(remaining_sessions - 1, 0)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DecrementRemainingSessions - build update query: %v", ErrBuildQuery, err)
	}

	reg, err := scanRegistration(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementRemainingSessions - execute update: %w", ErrExecQuery, err)
	}

	return reg, nil
}

func scanRegistration(row *sql.Row) (*domain.PTRegistration, error) {
	var reg domain.PTRegistration
	var trainerID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&reg.ID,
		&reg.MemberID,
		&trainerID,
		&reg.TotalSessions,
		&reg.RemainingSessions,
		&reg.Status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if trainerID.Valid {
		id := trainerID.Int64
		reg.TrainerID = &id
	}
	reg.CreatedAt = createdAt.Time
	reg.UpdatedAt = updatedAt.Time

	return &reg, nil
}
