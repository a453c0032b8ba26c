package recurrence

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// AvailabilityChecker детектор конфликтов
type AvailabilityChecker interface {
	IsTimeAvailable(ctx context.Context, trainerID int64, date time.Time, start, end types.TimeString) (bool, error)
}

// ReservationRepository хранилище бронирований
type ReservationRepository interface {
	LockTrainerDay(ctx context.Context, trainerID int64, date time.Time) error
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// ChangeLogRepository журнал изменений
type ChangeLogRepository interface {
	Append(ctx context.Context, entry *domain.ChangeLogEntry) (*domain.ChangeLogEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
