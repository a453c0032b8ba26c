package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/recurrence"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	LockTrainerDay(ctx context.Context, trainerID int64, date time.Time) error
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// ChangeLogRepository интерфейс журнала изменений
type ChangeLogRepository interface {
	Append(ctx context.Context, entry *domain.ChangeLogEntry) (*domain.ChangeLogEntry, error)
}

// RegistrationRepository интерфейс репозитория пакетов PT занятий
type RegistrationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PTRegistration, error)
}

// AvailabilityChecker детектор конфликтов
type AvailabilityChecker interface {
	IsTimeAvailable(ctx context.Context, trainerID int64, date time.Time, start, end types.TimeString) (bool, error)
}

// RecurrenceExpander разворачивание повторяющихся бронирований
type RecurrenceExpander interface {
	Expand(ctx context.Context, original *domain.Reservation, actor domain.Actor) (*recurrence.Result, error)
}

// EventEmitter отправка событий; ошибок не возвращает
type EventEmitter interface {
	Emit(ctx context.Context, eventType domain.EventType, role domain.RecipientRole, recipientID int64, reservationID int64, payload map[string]interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики повторений
type Metrics interface {
	AddOccurrences(created, skipped int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
