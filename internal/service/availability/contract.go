package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ScheduleRepository источник рабочих часов и блокировок тренера
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, trainerID int64, dayOfWeek int) (*domain.WeeklySchedule, error)
	GetBlockedIntervals(ctx context.Context, trainerID int64, date time.Time) ([]*domain.BlockedInterval, error)
}

// ReservationRepository источник занятых интервалов
type ReservationRepository interface {
	GetActiveByTrainerAndDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
