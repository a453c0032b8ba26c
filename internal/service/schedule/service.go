package schedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service сервис расписания тренеров: недельная сетка рабочих часов и разовые блокировки
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
	now          func() time.Time
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// GetTrainerSchedule получает недельную сетку тренера и блокировки за период
// Публичный метод - доступен всем
func (s *Service) GetTrainerSchedule(ctx context.Context, req *models.GetScheduleRequest) (*models.ScheduleResponse, error) {
	from := domain.DateOnly(s.now())
	if req.From != nil {
		from = domain.DateOnly(*req.From)
	}
	to := from.AddDate(0, 0, domain.DefaultSchedulePeriodDays-1)
	if req.To != nil {
		to = domain.DateOnly(*req.To)
	}

	s.logger.Info("GetTrainerSchedule: fetching schedule for trainer=%d, period=%s to %s",
		req.TrainerID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if to.Sub(from) > time.Duration(domain.MaxSchedulePeriodDays)*24*time.Hour {
		return nil, fmt.Errorf("%w: period must be at most %d days", ErrInvalidInput, domain.MaxSchedulePeriodDays)
	}

	weekly, err := s.scheduleRepo.ListWeeklyByTrainer(ctx, req.TrainerID)
	if err != nil {
		s.logger.Error("GetTrainerSchedule: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerSchedule - list weekly: %v", ErrInternal, err)
	}

	blocked, err := s.scheduleRepo.ListBlockedIntervals(ctx, req.TrainerID, from, to)
	if err != nil {
		s.logger.Error("GetTrainerSchedule: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerSchedule - list blocked: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(req.TrainerID, from, to, weekly, blocked), nil
}

// UpsertWeeklySchedule устанавливает рабочие часы тренера на день недели
// Доступно администратору и самому тренеру
func (s *Service) UpsertWeeklySchedule(ctx context.Context, req *models.UpsertWeeklyScheduleRequest) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("UpsertWeeklySchedule: trainer=%d, day=%d by %s", req.TrainerID, req.DayOfWeek, req.Actor)

	// 1. Проверяем права доступа
	if err := s.checkAccess(req.Actor, req.TrainerID); err != nil {
		s.logger.Warn("UpsertWeeklySchedule: access denied for %s to trainer=%d", req.Actor, req.TrainerID)
		return nil, err
	}

	// 2. Валидируем входные данные
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}
	if err := validateRange(req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("UpsertWeeklySchedule: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.scheduleRepo.UpsertWeeklySchedule(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("UpsertWeeklySchedule: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: UpsertWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWeeklySchedule: saved schedule id=%d", saved.ID)
	resp := models.FromDomainWeekly(saved)
	return &resp, nil
}

// AddBlockedInterval блокирует время тренера на дату
// Существующие бронирования не отменяются: блокировка влияет только на новые
func (s *Service) AddBlockedInterval(ctx context.Context, req *models.CreateBlockedIntervalRequest) (*models.BlockedIntervalResponse, error) {
	s.logger.Info("AddBlockedInterval: trainer=%d, date=%s by %s", req.TrainerID, req.Date, req.Actor)

	if err := s.checkAccess(req.Actor, req.TrainerID); err != nil {
		s.logger.Warn("AddBlockedInterval: access denied for %s to trainer=%d", req.Actor, req.TrainerID)
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if err := validateRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	saved, err := s.scheduleRepo.CreateBlockedInterval(ctx, &domain.BlockedInterval{
		TrainerID: req.TrainerID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		s.logger.Error("AddBlockedInterval: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: AddBlockedInterval - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlockedInterval: created blocked interval id=%d", saved.ID)
	resp := models.FromDomainBlocked(saved)
	return &resp, nil
}

// DeleteBlockedInterval снимает блокировку времени тренера
func (s *Service) DeleteBlockedInterval(ctx context.Context, actor domain.Actor, trainerID, id int64) error {
	s.logger.Info("DeleteBlockedInterval: trainer=%d, id=%d by %s", trainerID, id, actor)

	if err := s.checkAccess(actor, trainerID); err != nil {
		s.logger.Warn("DeleteBlockedInterval: access denied for %s to trainer=%d", actor, trainerID)
		return err
	}

	if err := s.scheduleRepo.DeleteBlockedInterval(ctx, trainerID, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedIntervalNotFound) {
			s.logger.Warn("DeleteBlockedInterval: blocked interval id=%d not found", id)
			return ErrBlockedIntervalNotFound
		}
		s.logger.Error("DeleteBlockedInterval: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedInterval - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedInterval: deleted blocked interval id=%d", id)
	return nil
}

// checkAccess администратор меняет любое расписание, тренер - только своё
func (s *Service) checkAccess(actor domain.Actor, trainerID int64) error {
	switch actor.Role {
	case domain.ActorAdmin:
		return nil
	case domain.ActorTrainer:
		if strings.TrimSpace(actor.ID) == strconv.FormatInt(trainerID, 10) {
			return nil
		}
	}
	return ErrAccessDenied
}

func validateRange(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	return nil
}
