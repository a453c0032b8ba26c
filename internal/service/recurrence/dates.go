package recurrence

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// OccurrenceDates возвращает даты повторений в интервале (start, end]
//   - daily: каждый день;
//   - weekly: дни с тем же днём недели, что и start;
//   - monthly: то же число месяца; месяцы без такого числа пропускаются (31 -> только 31-е).
//
// Для none и неизвестных политик возвращает пустой список.
func OccurrenceDates(policy domain.RepeatPolicy, start, end time.Time) []time.Time {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	dates := make([]time.Time, 0)
	if !end.After(start) {
		return dates
	}

	switch policy {
	case domain.RepeatDaily:
		for d := start.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	case domain.RepeatWeekly:
		for d := start.AddDate(0, 0, 7); !d.After(end); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}
	case domain.RepeatMonthly:
		day := start.Day()
		for i := 1; ; i++ {
			// первое число i-го следующего месяца, затем нужный день, если он есть
			first := time.Date(start.Year(), start.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
			if first.After(end) {
				break
			}
			d := first.AddDate(0, 0, day-1)
			if d.Month() != first.Month() {
				continue
			}
			if d.After(end) {
				break
			}
			dates = append(dates, d)
		}
	}

	return dates
}
