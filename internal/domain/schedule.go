package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// WeeklySchedule рабочие часы тренера в конкретный день недели
// Одна запись на пару (тренер, день недели); ведётся модулем управления тренерами
type WeeklySchedule struct {
	ID          int64
	TrainerID   int64
	DayOfWeek   int // 0 = понедельник ... 6 = воскресенье
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Contains проверяет, что интервал [start, end] целиком лежит в рабочих часах
func (s *WeeklySchedule) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(s.StartTime) && !end.IsAfter(s.EndTime)
}

// BlockedInterval разовое исключение из расписания тренера (отпуск, встреча)
type BlockedInterval struct {
	ID        int64
	TrainerID int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    string
}

// OverlapsWith проверяет пересечение с интервалом [start, end)
func (b *BlockedInterval) OverlapsWith(start, end types.TimeString) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// DayOfWeek возвращает день недели в нумерации расписания (понедельник = 0)
func DayOfWeek(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// DateOnly обнуляет время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate проверяет, что две отметки относятся к одной календарной дате
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
