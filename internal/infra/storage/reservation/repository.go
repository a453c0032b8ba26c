package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/pgerrors"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"member_id",
	"trainer_id",
	"pt_registration_id",
	"reservation_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"repeat_policy",
	"repeat_end_date",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с PT бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockTrainerDay берёт транзакционный advisory lock на пару (тренер, дата); снимается на commit/rollback.
// Ключ - bigint hashtextextended от "тренер:дата", коллизия только блокирует лишний день.
// В SERIALIZABLE снимок берётся до ожидания блокировки, поэтому взаимное исключение обеспечивают
// exclusion constraint и повтор на 40001; блокировка лишь выстраивает конкурентов в очередь.
// Вне транзакции ничего не делает.
func (r *Repository) LockTrainerDay(ctx context.Context, trainerID int64, date time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended($1, 0))",
		dayLockKey(trainerID, date),
	); err != nil {
		return fmt.Errorf("%w: LockTrainerDay - trainer=%d: %w", ErrLock, trainerID, err)
	}

	return nil
}

// Create создает новое бронирование
// Нарушение exclusion constraint (пересечение активных интервалов) возвращается как ErrSlotNotAvailable
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"member_id",
			"trainer_id",
			"pt_registration_id",
			"reservation_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"repeat_policy",
			"repeat_end_date",
			"notes",
		).
		Values(
			res.MemberID,
			res.TrainerID,
			res.PTRegistrationID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.DurationMinutes,
			res.Status,
			res.RepeatPolicy,
			res.RepeatEndDate,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	// Внутри транзакции вставка идёт под savepoint: после нарушения constraint
	// транзакция остаётся рабочей и повторения могут продолжить разворачиваться
	inTx := dbmetrics.IsInTransaction(ctx)
	if inTx {
		if _, err := executor.ExecContext(ctx, "SAVEPOINT reservation_insert"); err != nil {
			return nil, fmt.Errorf("%w: Create - savepoint: %w", ErrExecQuery, err)
		}
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if inTx {
			if _, rbErr := executor.ExecContext(ctx, "ROLLBACK TO SAVEPOINT reservation_insert"); rbErr != nil {
				return nil, fmt.Errorf("%w: Create - rollback to savepoint: %w", ErrExecQuery, rbErr)
			}
		}
		if pgerrors.IsExclusionViolation(err) || pgerrors.IsUniqueViolation(err) {
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if inTx {
		if _, err := executor.ExecContext(ctx, "RELEASE SAVEPOINT reservation_insert"); err != nil {
			return nil, fmt.Errorf("%w: Create - release savepoint: %w", ErrExecQuery, err)
		}
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки (внутри транзакции)
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// GetActiveByTrainerAndDate получает бронирования тренера на дату в статусах pending/confirmed
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetActiveByTrainerAndDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"trainer_id": trainerID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTrainerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTrainerAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// List получает бронирования по фильтру
// Сортировка: дата и время начала по возрастанию
//
// Примеры:
//
//  1. Все бронирования члена клуба:
//     filter := domain.ReservationFilter{MemberID: &memberID}
//
//  2. Подтверждённые бронирования тренера на дату:
//     filter := domain.ReservationFilter{TrainerID: &trainerID, StartDate: &date, EndDate: &date,
//     Statuses: []domain.ReservationStatus{domain.StatusConfirmed}}
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.MemberID != nil {
		builder = builder.Where(squirrel.Eq{"member_id": *filter.MemberID})
	}
	if filter.TrainerID != nil {
		builder = builder.Where(squirrel.Eq{"trainer_id": *filter.TrainerID})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	query, args, err := builder.OrderBy("reservation_date ASC", "start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус и заметки бронирования и возвращает обновлённую запись
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, notes string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return res, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var registrationID sql.NullInt64
	var repeatEndDate, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.MemberID,
		&res.TrainerID,
		&registrationID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.DurationMinutes,
		&res.Status,
		&res.RepeatPolicy,
		&repeatEndDate,
		&res.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if registrationID.Valid {
		id := registrationID.Int64
		res.PTRegistrationID = &id
	}
	if repeatEndDate.Valid {
		d := repeatEndDate.Time
		res.RepeatEndDate = &d
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// dayLockKey текстовый ключ advisory lock дня тренера
func dayLockKey(trainerID int64, date time.Time) string {
	return fmt.Sprintf("%d:%s", trainerID, domain.DateOnly(date).Format(domain.DateFormat))
}
