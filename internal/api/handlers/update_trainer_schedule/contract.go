package update_trainer_schedule

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertWeeklySchedule(ctx context.Context, req *models.UpsertWeeklyScheduleRequest) (*models.WeeklyScheduleResponse, error)
	AddBlockedInterval(ctx context.Context, req *models.CreateBlockedIntervalRequest) (*models.BlockedIntervalResponse, error)
	DeleteBlockedInterval(ctx context.Context, actor domain.Actor, trainerID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
