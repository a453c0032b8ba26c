package availability

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// dayState всё, что известно о дне тренера: рабочие часы, блокировки и занятые интервалы
// Один и тот же предикат isFree используется и для сетки слотов, и для проверки конкретного интервала
type dayState struct {
	schedule     *domain.WeeklySchedule
	blocked      []*domain.BlockedInterval
	reservations []*domain.Reservation
}

// isFree проверяет интервал [start, end) по порядку:
// рабочие часы, блокировки тренера, активные бронирования
func (d *dayState) isFree(start, end types.TimeString) bool {
	if d.schedule == nil || !d.schedule.IsAvailable {
		return false
	}
	if !d.schedule.Contains(start, end) {
		return false
	}

	for _, b := range d.blocked {
		if b.OverlapsWith(start, end) {
			return false
		}
	}

	for _, r := range d.reservations {
		if r.IsActive() && r.OverlapsWith(start, end) {
			return false
		}
	}

	return true
}

// slots нарезает рабочие часы на слоты по slotMinutes
// Слот начинается на каждом шаге, пока start < конца расписания; хвостовой слот,
// выходящий за конец расписания, помечается недоступным
func (d *dayState) slots(slotMinutes int) ([]domain.Slot, error) {
	if d.schedule == nil || !d.schedule.IsAvailable {
		return []domain.Slot{}, nil
	}

	startMin, err := d.schedule.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid schedule start: %w", err)
	}
	endMin, err := d.schedule.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid schedule end: %w", err)
	}

	result := make([]domain.Slot, 0, (endMin-startMin)/slotMinutes+1)
	for current := startMin; current < endMin; current += slotMinutes {
		slotStart, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			return nil, err
		}

		// 24:00 не представимо в HH:MM, такой хвост просто не публикуем
		slotEnd, err := types.NewTimeStringFromMinutes(current + slotMinutes)
		if err != nil {
			break
		}

		result = append(result, domain.Slot{
			StartTime:   slotStart,
			EndTime:     slotEnd,
			IsAvailable: d.isFree(slotStart, slotEnd),
		})
	}

	return result, nil
}
