package events

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Sink транспорт доставки событий во внешний сервис уведомлений
type Sink interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// Metrics счётчики доставки событий
type Metrics interface {
	IncEventEmitted(eventType string)
	IncEventFailed(eventType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
