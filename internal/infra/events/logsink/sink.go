package logsink

import (
	"context"
	"encoding/json"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Sink пишет события в лог вместо доставки; используется локально и при выключенных уведомлениях
type Sink struct {
	logger Logger
}

// New создает Sink
func New(logger Logger) *Sink {
	return &Sink{logger: logger}
}

// Publish логирует событие
func (s *Sink) Publish(_ context.Context, event *domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	s.logger.Info("Event: id=%s type=%s to %s=%d reservation=%d payload=%s",
		event.ID, event.Type, event.RecipientRole, event.RecipientID, event.ReservationID, payload)
	return nil
}
