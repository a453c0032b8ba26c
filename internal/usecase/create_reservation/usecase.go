package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	registrationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptregistration"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/events"
	"github.com/m04kA/SMC-ReservationService/internal/service/recurrence"
)

// UseCase use case для создания PT бронирования
type UseCase struct {
	reservationRepo  ReservationRepository
	changeLogRepo    ChangeLogRepository
	registrationRepo RegistrationRepository
	checker          AvailabilityChecker
	expander         RecurrenceExpander
	emitter          EventEmitter
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
	opts             Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	changeLogRepo ChangeLogRepository,
	registrationRepo RegistrationRepository,
	checker AvailabilityChecker,
	expander RecurrenceExpander,
	emitter EventEmitter,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.MinDurationMinutes <= 0 {
		opts.MinDurationMinutes = domain.MinDurationMinutes
	}
	if opts.MaxDurationMinutes <= 0 {
		opts.MaxDurationMinutes = domain.MaxDurationMinutes
	}
	return &UseCase{
		reservationRepo:  reservationRepo,
		changeLogRepo:    changeLogRepo,
		registrationRepo: registrationRepo,
		checker:          checker,
		expander:         expander,
		emitter:          emitter,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
		opts:             opts,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности, создание, запись в журнал и разворачивание повторений выполняются
// в одной сериализуемой транзакции под блокировкой дня тренера. Событие уходит после commit.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: member=%d, trainer=%d, date=%s, time=%s, duration=%d, repeat=%s by %s",
		req.MemberID, req.TrainerID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes,
		req.RepeatPolicy, req.Actor)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.opts); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Время окончания
	end, err := endTime(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation
	var expansion *recurrence.Result

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		expansion = nil

		// 3.1. Блокируем день тренера
		if err := uc.reservationRepo.LockTrainerDay(txCtx, req.TrainerID, req.Date); err != nil {
			return fmt.Errorf("%w: failed to lock trainer day: %w", ErrInternal, err)
		}

		// 3.2. Проверяем доступность интервала
		available, err := uc.checker.IsTimeAvailable(txCtx, req.TrainerID, req.Date, req.StartTime, end)
		if err != nil {
			return fmt.Errorf("%w: failed to check availability: %w", ErrInternal, err)
		}
		if !available {
			return ErrSlotUnavailable
		}

		// 3.3. Проверяем пакет PT занятий
		if req.PTRegistrationID != nil {
			reg, err := uc.registrationRepo.GetByID(txCtx, *req.PTRegistrationID)
			if err != nil {
				if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
					return ErrRegistrationNotFound
				}
				return fmt.Errorf("%w: failed to get registration: %w", ErrInternal, err)
			}
			if err := checkRegistration(reg, req); err != nil {
				return err
			}
		}

		// 3.4. Создаем бронирование в статусе pending
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			MemberID:         req.MemberID,
			TrainerID:        req.TrainerID,
			PTRegistrationID: req.PTRegistrationID,
			Date:             req.Date,
			StartTime:        req.StartTime,
			EndTime:          end,
			DurationMinutes:  req.DurationMinutes,
			Status:           domain.StatusPending,
			RepeatPolicy:     req.RepeatPolicy,
			RepeatEndDate:    req.RepeatEndDate,
			Notes:            req.Notes,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotNotAvailable) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		// 3.5. Запись о создании в журнал
		if _, err := uc.changeLogRepo.Append(txCtx, &domain.ChangeLogEntry{
			ReservationID: created.ID,
			ChangeType:    domain.ChangeCreated,
			ChangedBy:     req.Actor.String(),
			NewStatus:     domain.StatusPending,
		}); err != nil {
			return fmt.Errorf("%w: failed to append change log: %w", ErrInternal, err)
		}

		// 3.6. Разворачиваем повторения
		if created.ShouldExpand() {
			expansion, err = uc.expander.Expand(txCtx, created, req.Actor)
			if err != nil {
				return fmt.Errorf("%w: failed to expand recurrence: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotUnavailable):
			uc.logger.Warn("CreateReservation: slot %s %s-%s is not available for trainer=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, end, req.TrainerID)
		case errors.Is(err, ErrNoSessionsRemaining), errors.Is(err, ErrRegistrationNotFound), errors.Is(err, ErrRegistrationMismatch):
			uc.logger.Warn("CreateReservation: registration check failed: %v", err)
		default:
			uc.logger.Error("CreateReservation: %v", err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %w", ErrInternal, err)
			}
		}
		return nil, err
	}

	resp := &Response{Reservation: result, Occurrences: []*domain.Reservation{}}
	if expansion != nil {
		resp.Occurrences = expansion.Reservations
		resp.OccurrencesCreated = expansion.Created
		resp.OccurrencesSkipped = expansion.Skipped
		uc.metrics.AddOccurrences(expansion.Created, expansion.Skipped)
	}

	uc.logger.Info("CreateReservation: created reservation id=%d (occurrences created=%d, skipped=%d)",
		result.ID, resp.OccurrencesCreated, resp.OccurrencesSkipped)

	// 4. Уведомляем тренера о новом запросе
	payload := events.ReservationPayload(result)
	payload["occurrencesCreated"] = resp.OccurrencesCreated
	uc.emitter.Emit(ctx, domain.EventReservationRequest, domain.RecipientTrainer, result.TrainerID, result.ID, payload)

	return resp, nil
}
