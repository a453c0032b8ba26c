package send_reminders

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс для чтения бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// EventEmitter интерфейс для отправки событий
type EventEmitter interface {
	Emit(ctx context.Context, eventType domain.EventType, role domain.RecipientRole, recipientID int64, reservationID int64, payload map[string]interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
