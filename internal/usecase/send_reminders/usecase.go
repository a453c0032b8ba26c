package send_reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/events"
)

// UseCase use case для напоминаний о завтрашних занятиях
type UseCase struct {
	reservationRepo ReservationRepository
	emitter         EventEmitter
	logger          Logger
	now             func() time.Time
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, emitter EventEmitter, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		emitter:         emitter,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Execute рассылает reservation_reminder тренеру и члену клуба по каждому подтверждённому бронированию на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Определяем дату
	date := domain.DateOnly(uc.now()).AddDate(0, 0, 1)
	if req != nil && req.Date != nil {
		date = domain.DateOnly(*req.Date)
	}
	uc.logger.Info("SendReminders: collecting confirmed reservations for %s", date.Format(domain.DateFormat))

	// 2. Получаем подтверждённые бронирования
	list, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		StartDate: &date,
		EndDate:   &date,
		Statuses:  []domain.ReservationStatus{domain.StatusConfirmed},
	})
	if err != nil {
		uc.logger.Error("SendReminders: failed to list reservations for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 3. Отправляем напоминания обеим сторонам
	sent := 0
	for _, res := range list {
		payload := events.ReservationPayload(res)
		uc.emitter.Emit(ctx, domain.EventReservationReminder, domain.RecipientTrainer, res.TrainerID, res.ID, payload)
		uc.emitter.Emit(ctx, domain.EventReservationReminder, domain.RecipientMember, res.MemberID, res.ID, payload)
		sent += 2
	}

	uc.logger.Info("SendReminders: %d reminders for %d reservations on %s",
		sent, len(list), date.Format(domain.DateFormat))

	return &Response{
		Date:         date,
		Reservations: len(list),
		EventsSent:   sent,
	}, nil
}
