package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const defaultPublishTimeout = 5 * time.Second

// Emitter отправляет события жизненного цикла бронирований в Sink
// Ошибки доставки логируются и учитываются в метриках, но вызывающему не возвращаются:
// переход статуса уже зафиксирован и не откатывается из-за недоступности уведомлений
type Emitter struct {
	sink    Sink
	metrics Metrics
	logger  Logger
	timeout time.Duration
	now     func() time.Time
}

// NewEmitter создает Emitter; timeout <= 0 означает значение по умолчанию
func NewEmitter(sink Sink, metrics Metrics, logger Logger, timeout time.Duration) *Emitter {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Emitter{
		sink:    sink,
		metrics: metrics,
		logger:  logger,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Emit строит событие с уникальным ID и передаёт его в Sink
// Отмена контекста запроса не прерывает доставку: используется отдельный таймаут
func (e *Emitter) Emit(
	ctx context.Context,
	eventType domain.EventType,
	role domain.RecipientRole,
	recipientID int64,
	reservationID int64,
	payload map[string]interface{},
) {
	event := &domain.Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		RecipientRole: role,
		RecipientID:   recipientID,
		ReservationID: reservationID,
		Payload:       payload,
		OccurredAt:    e.now(),
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.timeout)
	defer cancel()

	if err := e.sink.Publish(publishCtx, event); err != nil {
		e.metrics.IncEventFailed(string(eventType))
		e.logger.Warn("Emit: failed to publish event id=%s type=%s to %s=%d (reservation=%d): %v",
			event.ID, eventType, role, recipientID, reservationID, err)
		return
	}

	e.metrics.IncEventEmitted(string(eventType))
	e.logger.Info("Emit: event id=%s type=%s sent to %s=%d (reservation=%d)",
		event.ID, eventType, role, recipientID, reservationID)
}

// ReservationPayload данные бронирования для шаблонов уведомлений
func ReservationPayload(r *domain.Reservation) map[string]interface{} {
	payload := map[string]interface{}{
		"reservationId": r.ID,
		"memberId":      r.MemberID,
		"trainerId":     r.TrainerID,
		"date":          r.Date.Format(domain.DateFormat),
		"startTime":     r.StartTime.String(),
		"endTime":       r.EndTime.String(),
		"status":        string(r.Status),
	}
	if r.Notes != "" {
		payload["notes"] = r.Notes
	}
	return payload
}
