package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания тренеров
type ScheduleRepository interface {
	ListWeeklyByTrainer(ctx context.Context, trainerID int64) ([]*domain.WeeklySchedule, error)
	ListBlockedIntervals(ctx context.Context, trainerID int64, from, to time.Time) ([]*domain.BlockedInterval, error)
	UpsertWeeklySchedule(ctx context.Context, ws *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
	CreateBlockedInterval(ctx context.Context, b *domain.BlockedInterval) (*domain.BlockedInterval, error)
	DeleteBlockedInterval(ctx context.Context, trainerID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
