package recurrence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

var monday = date(2025, 6, 2)

type fixture struct {
	store    *memory.Store
	expander *Expander
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.Load(memory.Seed{Schedules: []domain.WeeklySchedule{
		{TrainerID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "18:00", IsAvailable: true},
	}})
	log := logger.NewDiscard()
	checker := availability.NewService(store.Schedules(), store.Reservations(), 30, log)
	return &fixture{
		store:    store,
		expander: NewExpander(checker, store.Reservations(), store.ChangeLogs(), log),
	}
}

func (f *fixture) original(t *testing.T, policy domain.RepeatPolicy, end time.Time) *domain.Reservation {
	t.Helper()
	res, err := f.store.Reservations().Create(context.Background(), &domain.Reservation{
		MemberID:         7,
		TrainerID:        1,
		PTRegistrationID: ptr.Ptr(int64(3)),
		Date:             monday,
		StartTime:        "10:00",
		EndTime:          "10:30",
		DurationMinutes:  30,
		Status:           domain.StatusPending,
		RepeatPolicy:     policy,
		RepeatEndDate:    &end,
		Notes:            "legs",
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) expand(t *testing.T, original *domain.Reservation) *Result {
	t.Helper()
	var result *Result
	err := f.store.TxManager().DoSerializable(context.Background(), func(txCtx context.Context) error {
		var err error
		result, err = f.expander.Expand(txCtx, original, domain.Actor{ID: "member-7", Role: domain.ActorMember})
		return err
	})
	require.NoError(t, err)
	return result
}

func TestExpand_WeeklyThreeOccurrences(t *testing.T) {
	f := newFixture(t)
	original := f.original(t, domain.RepeatWeekly, monday.AddDate(0, 0, 21))

	result := f.expand(t, original)

	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Reservations, 3)
	for i, occ := range result.Reservations {
		assert.Equal(t, monday.AddDate(0, 0, 7*(i+1)), occ.Date)
		assert.Equal(t, domain.StatusPending, occ.Status)
		assert.Equal(t, domain.RepeatNone, occ.RepeatPolicy)
		assert.Nil(t, occ.RepeatEndDate)
		assert.Equal(t, original.MemberID, occ.MemberID)
		assert.Equal(t, original.PTRegistrationID, occ.PTRegistrationID)
		assert.Equal(t, original.DurationMinutes, occ.DurationMinutes)
		assert.Equal(t, "legs", occ.Notes)

		entries, err := f.store.ChangeLogs().ListByReservation(context.Background(), occ.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.ChangeCreated, entries[0].ChangeType)
		assert.Equal(t, "member-7 (member)", entries[0].ChangedBy)
	}
}

func TestExpand_BlockedWeekIsSkipped(t *testing.T) {
	f := newFixture(t)
	f.store.AddBlockedInterval(domain.BlockedInterval{
		TrainerID: 1, Date: monday.AddDate(0, 0, 14), StartTime: "09:00", EndTime: "12:00", Reason: "vacation",
	})
	original := f.original(t, domain.RepeatWeekly, monday.AddDate(0, 0, 21))

	result := f.expand(t, original)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, monday.AddDate(0, 0, 7), result.Reservations[0].Date)
	assert.Equal(t, monday.AddDate(0, 0, 21), result.Reservations[1].Date)
}

func TestExpand_DailySkipsDaysWithoutSchedule(t *testing.T) {
	f := newFixture(t)
	original := f.original(t, domain.RepeatDaily, monday.AddDate(0, 0, 7))

	result := f.expand(t, original)

	// расписание есть только по понедельникам
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 6, result.Skipped)
}

func TestExpand_NeverOutsideBounds(t *testing.T) {
	f := newFixture(t)
	end := monday.AddDate(0, 0, 20)
	original := f.original(t, domain.RepeatWeekly, end)

	result := f.expand(t, original)

	for _, occ := range result.Reservations {
		assert.True(t, occ.Date.After(original.Date))
		assert.False(t, occ.Date.After(end))
	}
	assert.Equal(t, 2, result.Created)
}

func TestExpand_NotRecurring(t *testing.T) {
	f := newFixture(t)
	res := &domain.Reservation{RepeatPolicy: domain.RepeatNone}

	_, err := f.expander.Expand(context.Background(), res, domain.Actor{ID: "x"})
	assert.ErrorIs(t, err, ErrNotRecurring)
}
