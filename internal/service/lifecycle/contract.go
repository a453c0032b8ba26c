package lifecycle

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository хранилище бронирований
type ReservationRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, notes string) (*domain.Reservation, error)
}

// ChangeLogRepository журнал изменений
type ChangeLogRepository interface {
	Append(ctx context.Context, entry *domain.ChangeLogEntry) (*domain.ChangeLogEntry, error)
}

// RecordRepository хранилище записей о проведённых занятиях
type RecordRepository interface {
	Create(ctx context.Context, record *domain.PTRecord) (*domain.PTRecord, error)
}

// Ledger списание занятий с пакета PT
type Ledger interface {
	DebitSession(ctx context.Context, registrationID int64) (*domain.PTRegistration, error)
}

// EventEmitter отправка событий; ошибок не возвращает
type EventEmitter interface {
	Emit(ctx context.Context, eventType domain.EventType, role domain.RecipientRole, recipientID int64, reservationID int64, payload map[string]interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики переходов
type Metrics interface {
	IncTransition(to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
