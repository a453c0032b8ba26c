package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service индекс доступности и детектор конфликтов для расписания тренеров
// Ничего не кэширует: каждый вызов читает состояние заново (внутри транзакции через неё)
type Service struct {
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	slotMinutes     int
	logger          Logger
}

// NewService создает сервис доступности; slotMinutes <= 0 означает значение по умолчанию
func NewService(
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	slotMinutes int,
	logger Logger,
) *Service {
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}
	return &Service{
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		slotMinutes:     slotMinutes,
		logger:          logger,
	}
}

// AvailableWindows возвращает сетку слотов тренера на дату с признаком доступности
// Если расписания на этот день нет или тренер недоступен, возвращается пустой список
func (s *Service) AvailableWindows(ctx context.Context, trainerID int64, date time.Time) ([]domain.Slot, error) {
	day, err := s.loadDay(ctx, trainerID, date)
	if err != nil {
		s.logger.Error("AvailableWindows: trainer=%d, date=%s: %v", trainerID, date.Format(domain.DateFormat), err)
		return nil, err
	}

	slots, err := day.slots(s.slotMinutes)
	if err != nil {
		s.logger.Error("AvailableWindows: failed to build slots for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: AvailableWindows - build slots: %v", ErrInternal, err)
	}

	return slots, nil
}

// IsTimeAvailable проверяет, можно ли занять интервал [start, end) у тренера на дату
func (s *Service) IsTimeAvailable(ctx context.Context, trainerID int64, date time.Time, start, end types.TimeString) (bool, error) {
	if !start.IsBefore(end) {
		return false, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, start, end)
	}

	day, err := s.loadDay(ctx, trainerID, date)
	if err != nil {
		s.logger.Error("IsTimeAvailable: trainer=%d, date=%s: %v", trainerID, date.Format(domain.DateFormat), err)
		return false, err
	}

	return day.isFree(start, end), nil
}

func (s *Service) loadDay(ctx context.Context, trainerID int64, date time.Time) (*dayState, error) {
	ws, err := s.scheduleRepo.GetWeeklySchedule(ctx, trainerID, domain.DayOfWeek(date))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return &dayState{}, nil
		}
		return nil, fmt.Errorf("%w: loadDay - get weekly schedule: %w", ErrInternal, err)
	}
	if !ws.IsAvailable {
		return &dayState{schedule: ws}, nil
	}

	blocked, err := s.scheduleRepo.GetBlockedIntervals(ctx, trainerID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: loadDay - get blocked intervals: %w", ErrInternal, err)
	}

	reservations, err := s.reservationRepo.GetActiveByTrainerAndDate(ctx, trainerID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: loadDay - get reservations: %w", ErrInternal, err)
	}

	return &dayState{
		schedule:     ws,
		blocked:      blocked,
		reservations: reservations,
	}, nil
}
