package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func format(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(domain.DateFormat)
	}
	return out
}

func TestOccurrenceDates(t *testing.T) {
	tests := []struct {
		name   string
		policy domain.RepeatPolicy
		start  time.Time
		end    time.Time
		want   []string
	}{
		{
			name:   "daily includes end date",
			policy: domain.RepeatDaily,
			start:  date(2025, 6, 2), end: date(2025, 6, 5),
			want: []string{"2025-06-03", "2025-06-04", "2025-06-05"},
		},
		{
			name:   "weekly over 21 days gives three occurrences",
			policy: domain.RepeatWeekly,
			start:  date(2025, 6, 2), end: date(2025, 6, 23),
			want: []string{"2025-06-09", "2025-06-16", "2025-06-23"},
		},
		{
			name:   "weekly end before next week",
			policy: domain.RepeatWeekly,
			start:  date(2025, 6, 2), end: date(2025, 6, 8),
			want: []string{},
		},
		{
			name:   "monthly same day of month",
			policy: domain.RepeatMonthly,
			start:  date(2025, 1, 15), end: date(2025, 4, 15),
			want: []string{"2025-02-15", "2025-03-15", "2025-04-15"},
		},
		{
			name:   "monthly skips months without the day",
			policy: domain.RepeatMonthly,
			start:  date(2025, 1, 31), end: date(2025, 6, 30),
			want: []string{"2025-03-31", "2025-05-31"},
		},
		{
			name:   "monthly across year boundary",
			policy: domain.RepeatMonthly,
			start:  date(2025, 11, 10), end: date(2026, 2, 9),
			want: []string{"2025-12-10", "2026-01-10"},
		},
		{
			name:   "none",
			policy: domain.RepeatNone,
			start:  date(2025, 6, 2), end: date(2025, 6, 30),
			want: []string{},
		},
		{
			name:   "end before start",
			policy: domain.RepeatDaily,
			start:  date(2025, 6, 2), end: date(2025, 6, 1),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(OccurrenceDates(tt.policy, tt.start, tt.end)))
		})
	}
}
