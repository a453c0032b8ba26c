package recurrence

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// Result итог разворачивания повторяющегося бронирования
type Result struct {
	Created      int
	Skipped      int
	Reservations []*domain.Reservation
}

// Expander создаёт одиночные бронирования по политике повторения исходного
// Должен вызываться внутри транзакции создания исходного бронирования
type Expander struct {
	checker         AvailabilityChecker
	reservationRepo ReservationRepository
	changeLogRepo   ChangeLogRepository
	logger          Logger
}

// NewExpander создает новый экземпляр Expander
func NewExpander(
	checker AvailabilityChecker,
	reservationRepo ReservationRepository,
	changeLogRepo ChangeLogRepository,
	logger Logger,
) *Expander {
	return &Expander{
		checker:         checker,
		reservationRepo: reservationRepo,
		changeLogRepo:   changeLogRepo,
		logger:          logger,
	}
}

// Expand создаёт повторения исходного бронирования с даты original.Date+1 по RepeatEndDate включительно
// Каждая дата проверяется детектором конфликтов отдельно; занятые даты молча пропускаются.
// Повторения создаются в статусе pending с repeatPolicy=none и собственной записью created в журнале.
func (e *Expander) Expand(ctx context.Context, original *domain.Reservation, actor domain.Actor) (*Result, error) {
	if !original.ShouldExpand() {
		return nil, ErrNotRecurring
	}

	dates := OccurrenceDates(original.RepeatPolicy, original.Date, *original.RepeatEndDate)
	result := &Result{Reservations: make([]*domain.Reservation, 0, len(dates))}

	for _, date := range dates {
		// 1. Блокируем день тренера до конца транзакции
		if err := e.reservationRepo.LockTrainerDay(ctx, original.TrainerID, date); err != nil {
			return nil, fmt.Errorf("%w: Expand - lock %s: %w", ErrInternal, date.Format(domain.DateFormat), err)
		}

		// 2. Проверяем доступность заново для каждой даты
		available, err := e.checker.IsTimeAvailable(ctx, original.TrainerID, date, original.StartTime, original.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: Expand - check %s: %w", ErrInternal, date.Format(domain.DateFormat), err)
		}
		if !available {
			result.Skipped++
			continue
		}

		// 3. Создаём одиночное повторение
		occurrence := &domain.Reservation{
			MemberID:         original.MemberID,
			TrainerID:        original.TrainerID,
			PTRegistrationID: original.PTRegistrationID,
			Date:             date,
			StartTime:        original.StartTime,
			EndTime:          original.EndTime,
			DurationMinutes:  original.DurationMinutes,
			Status:           domain.StatusPending,
			RepeatPolicy:     domain.RepeatNone,
			Notes:            original.Notes,
		}

		created, err := e.reservationRepo.Create(ctx, occurrence)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotNotAvailable) {
				result.Skipped++
				continue
			}
			return nil, fmt.Errorf("%w: Expand - create %s: %w", ErrInternal, date.Format(domain.DateFormat), err)
		}

		// 4. Запись о создании в журнал
		if _, err := e.changeLogRepo.Append(ctx, &domain.ChangeLogEntry{
			ReservationID: created.ID,
			ChangeType:    domain.ChangeCreated,
			ChangedBy:     actor.String(),
			NewStatus:     domain.StatusPending,
			Reason:        fmt.Sprintf("Recurring occurrence of reservation #%d", original.ID),
		}); err != nil {
			return nil, fmt.Errorf("%w: Expand - change log for %d: %w", ErrInternal, created.ID, err)
		}

		result.Created++
		result.Reservations = append(result.Reservations, created)
	}

	e.logger.Info("Expand: reservation id=%d (%s until %s): created=%d, skipped=%d",
		original.ID, original.RepeatPolicy, original.RepeatEndDate.Format(domain.DateFormat), result.Created, result.Skipped)

	return result, nil
}
