package reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// ChangeLogRepository интерфейс журнала изменений
type ChangeLogRepository interface {
	ListByReservation(ctx context.Context, reservationID int64) ([]*domain.ChangeLogEntry, error)
}

// RecordRepository интерфейс репозитория записей о занятиях
type RecordRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.PTRecord, error)
	List(ctx context.Context, filter domain.PTRecordFilter) ([]*domain.PTRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
