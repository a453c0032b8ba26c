package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// GetScheduleRequest запрос на получение расписания тренера
// Без периода возвращаются блокировки на DefaultSchedulePeriodDays дней начиная с сегодняшнего
type GetScheduleRequest struct {
	TrainerID int64      `json:"trainerId"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
}

// UpsertWeeklyScheduleRequest запрос на установку рабочих часов на день недели
type UpsertWeeklyScheduleRequest struct {
	Actor       domain.Actor     `json:"-"`
	TrainerID   int64            `json:"-"`
	DayOfWeek   int              `json:"dayOfWeek"` // 0 = понедельник
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
	IsAvailable *bool            `json:"isAvailable,omitempty"` // по умолчанию true
}

// ToDomain конвертирует запрос в domain модель
func (r *UpsertWeeklyScheduleRequest) ToDomain() *domain.WeeklySchedule {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return &domain.WeeklySchedule{
		TrainerID:   r.TrainerID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: available,
	}
}

// CreateBlockedIntervalRequest запрос на блокировку времени тренера
type CreateBlockedIntervalRequest struct {
	Actor     domain.Actor     `json:"-"`
	TrainerID int64            `json:"-"`
	Date      string           `json:"date"` // "2025-10-15"
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Reason    string           `json:"reason,omitempty"`
}

// Response модели

// WeeklyScheduleResponse рабочие часы на день недели
type WeeklyScheduleResponse struct {
	ID          int64  `json:"id"`
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// BlockedIntervalResponse блокировка времени тренера
type BlockedIntervalResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason,omitempty"`
}

// ScheduleResponse расписание тренера: недельная сетка и блокировки за период
type ScheduleResponse struct {
	TrainerID int64                     `json:"trainerId"`
	From      string                    `json:"from"`
	To        string                    `json:"to"`
	Weekly    []WeeklyScheduleResponse  `json:"weekly"`
	Blocked   []BlockedIntervalResponse `json:"blocked"`
}

// Методы конвертации

// FromDomainWeekly конвертирует рабочие часы в DTO
func FromDomainWeekly(ws *domain.WeeklySchedule) WeeklyScheduleResponse {
	return WeeklyScheduleResponse{
		ID:          ws.ID,
		DayOfWeek:   ws.DayOfWeek,
		StartTime:   ws.StartTime.String(),
		EndTime:     ws.EndTime.String(),
		IsAvailable: ws.IsAvailable,
	}
}

// FromDomainBlocked конвертирует блокировку в DTO
func FromDomainBlocked(b *domain.BlockedInterval) BlockedIntervalResponse {
	return BlockedIntervalResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Reason:    b.Reason,
	}
}

// FromDomainSchedule собирает ответ с расписанием
func FromDomainSchedule(trainerID int64, from, to time.Time, weekly []*domain.WeeklySchedule, blocked []*domain.BlockedInterval) *ScheduleResponse {
	resp := &ScheduleResponse{
		TrainerID: trainerID,
		From:      from.Format(domain.DateFormat),
		To:        to.Format(domain.DateFormat),
		Weekly:    make([]WeeklyScheduleResponse, 0, len(weekly)),
		Blocked:   make([]BlockedIntervalResponse, 0, len(blocked)),
	}
	for _, ws := range weekly {
		resp.Weekly = append(resp.Weekly, FromDomainWeekly(ws))
	}
	for _, b := range blocked {
		resp.Blocked = append(resp.Blocked, FromDomainBlocked(b))
	}
	return resp
}
