package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/events"
	"github.com/m04kA/SMC-ReservationService/internal/service/ledger"
)

// Service конечный автомат жизненного цикла бронирования
// Каждый переход выполняется в одной сериализуемой транзакции: блокировка строки, проверка перехода,
// смена статуса, запись в журнал (и для завершения - запись о занятии и списание с пакета).
// События отправляются только после commit.
type Service struct {
	reservationRepo       ReservationRepository
	changeLogRepo         ChangeLogRepository
	recordRepo            RecordRepository
	ledger                Ledger
	emitter               EventEmitter
	txManager             TransactionManager
	metrics               Metrics
	logger                Logger
	notifyOnPendingCancel bool
	maxDurationMinutes    int
}

// Options настройки политики уведомлений и ограничений записи о занятии
type Options struct {
	// NotifyOnPendingCancel включает уведомление второй стороны при отмене ещё не подтверждённого бронирования
	NotifyOnPendingCancel bool
	// MaxDurationMinutes верхняя граница фактической длительности занятия; 0 = domain.MaxDurationMinutes
	MaxDurationMinutes int
}

// NewService создает новый экземпляр сервиса жизненного цикла
func NewService(
	reservationRepo ReservationRepository,
	changeLogRepo ChangeLogRepository,
	recordRepo RecordRepository,
	ledger Ledger,
	emitter EventEmitter,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	opts Options,
) *Service {
	if opts.MaxDurationMinutes <= 0 {
		opts.MaxDurationMinutes = domain.MaxDurationMinutes
	}
	return &Service{
		reservationRepo:       reservationRepo,
		changeLogRepo:         changeLogRepo,
		recordRepo:            recordRepo,
		ledger:                ledger,
		emitter:               emitter,
		txManager:             txManager,
		metrics:               metrics,
		logger:                logger,
		notifyOnPendingCancel: opts.NotifyOnPendingCancel,
		maxDurationMinutes:    opts.MaxDurationMinutes,
	}
}

// transition параметры одного перехода
type transition struct {
	to        domain.ReservationStatus
	reason    string
	noteLabel string // если задан и reason не пуст, reason дописывается в начало notes

	// afterUpdate выполняется в той же транзакции после смены статуса и записи в журнал
	afterUpdate func(txCtx context.Context, res *domain.Reservation) error
}

// Confirm подтверждает бронирование: pending -> confirmed
func (s *Service) Confirm(ctx context.Context, id int64, actor domain.Actor) (*domain.Reservation, error) {
	s.logger.Info("Confirm: reservation id=%d by %s", id, actor)

	if err := requireRole(actor, domain.ActorTrainer, domain.ActorAdmin); err != nil {
		return nil, err
	}

	res, _, err := s.apply(ctx, "Confirm", id, actor, transition{to: domain.StatusConfirmed})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, domain.EventReservationConfirmed, domain.RecipientMember, res.MemberID, res.ID,
		events.ReservationPayload(res))

	return res, nil
}

// Reject отклоняет бронирование: pending -> rejected
func (s *Service) Reject(ctx context.Context, id int64, actor domain.Actor, reason string) (*domain.Reservation, error) {
	s.logger.Info("Reject: reservation id=%d by %s", id, actor)

	if err := requireRole(actor, domain.ActorTrainer, domain.ActorAdmin); err != nil {
		return nil, err
	}
	if err := validateReason(reason); err != nil {
		return nil, err
	}

	res, _, err := s.apply(ctx, "Reject", id, actor, transition{
		to:        domain.StatusRejected,
		reason:    reason,
		noteLabel: domain.RejectReasonLabel,
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, domain.EventReservationRejected, domain.RecipientMember, res.MemberID, res.ID,
		withReason(events.ReservationPayload(res), reason))

	return res, nil
}

// Cancel отменяет бронирование: pending|confirmed -> cancelled
// Уведомляется вторая сторона: отменил тренер - клиент, отменил клиент - тренер, администратор - оба.
// Отмена pending бронирования уведомляет только при включённой опции NotifyOnPendingCancel.
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor, reason string) (*domain.Reservation, error) {
	s.logger.Info("Cancel: reservation id=%d by %s", id, actor)

	if err := requireRole(actor, domain.ActorMember, domain.ActorTrainer, domain.ActorAdmin, domain.ActorSystem); err != nil {
		return nil, err
	}
	if err := validateReason(reason); err != nil {
		return nil, err
	}

	res, previous, err := s.apply(ctx, "Cancel", id, actor, transition{
		to:        domain.StatusCancelled,
		reason:    reason,
		noteLabel: domain.CancelReasonLabel,
	})
	if err != nil {
		return nil, err
	}

	if previous == domain.StatusPending && !s.notifyOnPendingCancel {
		return res, nil
	}

	payload := withReason(events.ReservationPayload(res), reason)
	payload["cancelledBy"] = string(actor.Role)

	notifyMember := actor.Role != domain.ActorMember
	notifyTrainer := actor.Role != domain.ActorTrainer
	if notifyMember {
		s.emitter.Emit(ctx, domain.EventReservationCancelled, domain.RecipientMember, res.MemberID, res.ID, payload)
	}
	if notifyTrainer {
		s.emitter.Emit(ctx, domain.EventReservationCancelled, domain.RecipientTrainer, res.TrainerID, res.ID, payload)
	}

	return res, nil
}

// MarkNoShow отмечает неявку: pending|confirmed -> no_show
// Административная операция, событий не порождает
func (s *Service) MarkNoShow(ctx context.Context, id int64, actor domain.Actor, reason string) (*domain.Reservation, error) {
	s.logger.Info("MarkNoShow: reservation id=%d by %s", id, actor)

	if err := requireRole(actor, domain.ActorAdmin, domain.ActorSystem); err != nil {
		return nil, err
	}
	if err := validateReason(reason); err != nil {
		return nil, err
	}

	res, _, err := s.apply(ctx, "MarkNoShow", id, actor, transition{
		to:        domain.StatusNoShow,
		reason:    reason,
		noteLabel: domain.NoShowReasonLabel,
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// CompleteSession завершает занятие: confirmed -> completed
// В той же транзакции создаёт запись о занятии и, если бронирование привязано к пакету, списывает одно занятие
func (s *Service) CompleteSession(ctx context.Context, id int64, actor domain.Actor, req CompleteRequest) (*domain.PTRecord, error) {
	s.logger.Info("CompleteSession: reservation id=%d by %s", id, actor)

	if err := requireRole(actor, domain.ActorTrainer, domain.ActorAdmin); err != nil {
		return nil, err
	}
	if err := validateCompleteRequest(req, s.maxDurationMinutes); err != nil {
		return nil, err
	}

	var record *domain.PTRecord
	var registration *domain.PTRegistration

	res, _, err := s.apply(ctx, "CompleteSession", id, actor, transition{
		to: domain.StatusCompleted,
		afterUpdate: func(txCtx context.Context, res *domain.Reservation) error {
			// 1. Запись о занятии
			created, err := s.recordRepo.Create(txCtx, buildRecord(res, req))
			if err != nil {
				return fmt.Errorf("%w: CompleteSession - create record: %w", ErrInternal, err)
			}
			record = created

			// 2. Списание занятия с пакета
			if !res.HasRegistration() {
				return nil
			}
			registration, err = s.ledger.DebitSession(txCtx, *res.PTRegistrationID)
			if err != nil {
				if errors.Is(err, ledger.ErrRegistrationNotFound) {
					return ErrRegistrationNotFound
				}
				return fmt.Errorf("%w: CompleteSession - debit session: %w", ErrInternal, err)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	payload := events.ReservationPayload(res)
	payload["recordId"] = record.ID
	payload["durationMinutes"] = record.DurationMinutes
	if registration != nil {
		payload["remainingSessions"] = registration.RemainingSessions
	}

	s.emitter.Emit(ctx, domain.EventPTCompleted, domain.RecipientMember, res.MemberID, res.ID, payload)
	s.emitter.Emit(ctx, domain.EventPTCompleted, domain.RecipientTrainer, record.TrainerID, res.ID, payload)

	return record, nil
}

// apply выполняет переход в сериализуемой транзакции и возвращает обновлённое бронирование и прежний статус
func (s *Service) apply(ctx context.Context, op string, id int64, actor domain.Actor, t transition) (*domain.Reservation, domain.ReservationStatus, error) {
	var updated *domain.Reservation
	var previous domain.ReservationStatus

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем строку бронирования
		res, err := s.reservationRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: %s - get reservation: %w", ErrInternal, op, err)
		}
		previous = res.Status

		// 2. Проверяем допустимость перехода
		if !domain.CanTransition(res.Status, t.to) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, res.Status, t.to)
		}

		// 3. Обновляем статус и заметки
		if t.noteLabel != "" && t.reason != "" {
			res.PrependNote(t.noteLabel, t.reason)
		}
		updated, err = s.reservationRepo.UpdateStatus(txCtx, id, t.to, res.Notes)
		if err != nil {
			return fmt.Errorf("%w: %s - update status: %w", ErrInternal, op, err)
		}

		// 4. Запись в журнал изменений
		if _, err := s.changeLogRepo.Append(txCtx, &domain.ChangeLogEntry{
			ReservationID:  id,
			ChangeType:     domain.ChangeTypeFor(t.to),
			ChangedBy:      actor.String(),
			PreviousStatus: previous,
			NewStatus:      t.to,
			Reason:         t.reason,
		}); err != nil {
			return fmt.Errorf("%w: %s - append change log: %w", ErrInternal, op, err)
		}

		if t.afterUpdate != nil {
			return t.afterUpdate(txCtx, updated)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			s.logger.Warn("%s: reservation id=%d not found", op, id)
		case errors.Is(err, ErrIllegalTransition), errors.Is(err, ErrRegistrationNotFound):
			s.logger.Warn("%s: reservation id=%d: %v", op, id, err)
		default:
			s.logger.Error("%s: reservation id=%d: %v", op, id, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
			}
		}
		return nil, "", err
	}

	s.metrics.IncTransition(string(t.to))
	s.logger.Info("%s: reservation id=%d %s -> %s", op, id, previous, t.to)

	return updated, previous, nil
}

func buildRecord(res *domain.Reservation, req CompleteRequest) *domain.PTRecord {
	trainerID := res.TrainerID
	if req.TrainerID != nil {
		trainerID = *req.TrainerID
	}
	duration := res.DurationMinutes
	if req.DurationMinutes > 0 {
		duration = req.DurationMinutes
	}

	return &domain.PTRecord{
		ReservationID:   res.ID,
		TrainerID:       trainerID,
		MemberID:        res.MemberID,
		WorkoutDate:     res.Date,
		WorkoutTime:     res.StartTime,
		DurationMinutes: duration,
		Content:         req.Content,
		MemberCondition: req.MemberCondition,
		TrainerNotes:    req.TrainerNotes,
		IsCompleted:     true,
	}
}

func requireRole(actor domain.Actor, allowed ...domain.ActorRole) error {
	id := strings.TrimSpace(actor.ID)
	if id == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if len(id) > domain.MaxActorLength {
		return fmt.Errorf("%w: actor must be at most %d characters", ErrInvalidInput, domain.MaxActorLength)
	}
	for _, role := range allowed {
		if actor.Role == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrForbidden, actor.Role)
}

func validateReason(reason string) error {
	if len(reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}

func validateCompleteRequest(req CompleteRequest, maxDuration int) error {
	if req.TrainerID != nil && *req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerId must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes < 0 || req.DurationMinutes > maxDuration {
		return fmt.Errorf("%w: durationMinutes must be between 0 and %d", ErrInvalidInput, maxDuration)
	}
	for _, text := range []string{req.Content, req.MemberCondition, req.TrainerNotes} {
		if len(text) > domain.MaxNotesLength {
			return fmt.Errorf("%w: text fields must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
	}
	return nil
}

func withReason(payload map[string]interface{}, reason string) map[string]interface{} {
	if reason != "" {
		payload["reason"] = reason
	}
	return payload
}
