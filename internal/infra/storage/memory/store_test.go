package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptregistration"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func newReservation(start, end string) *domain.Reservation {
	return &domain.Reservation{
		MemberID:        7,
		TrainerID:       1,
		Date:            monday,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		DurationMinutes: 30,
		Status:          domain.StatusPending,
		RepeatPolicy:    domain.RepeatNone,
	}
}

func TestReservationRepository_CreateRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Reservations()

	created, err := repo.Create(ctx, newReservation("10:00", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = repo.Create(ctx, newReservation("10:15", "10:45"))
	assert.ErrorIs(t, err, reservation.ErrSlotNotAvailable)

	// соседний интервал не пересекается
	_, err = repo.Create(ctx, newReservation("10:30", "11:00"))
	assert.NoError(t, err)
}

func TestReservationRepository_InactiveDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Reservations()

	created, err := repo.Create(ctx, newReservation("10:00", "10:30"))
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.ID, domain.StatusCancelled, "")
	require.NoError(t, err)

	_, err = repo.Create(ctx, newReservation("10:00", "10:30"))
	assert.NoError(t, err)
}

func TestReservationRepository_GetByIDNotFound(t *testing.T) {
	_, err := NewStore().Reservations().GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Reservations()
	logs := store.ChangeLogs()
	boom := errors.New("boom")

	err := store.TxManager().DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := repo.Create(txCtx, newReservation("10:00", "10:30"))
		require.NoError(t, err)
		_, err = logs.Append(txCtx, &domain.ChangeLogEntry{
			ReservationID: created.ID,
			ChangeType:    domain.ChangeCreated,
			NewStatus:     domain.StatusPending,
		})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := repo.List(ctx, domain.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	entries, err := logs.ListByReservation(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTxManager_ConcurrentCreatesOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Reservations()
	tx := store.TxManager()

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.DoSerializable(ctx, func(txCtx context.Context) error {
				active, err := repo.GetActiveByTrainerAndDate(txCtx, 1, monday)
				if err != nil {
					return err
				}
				if len(active) > 0 {
					return reservation.ErrSlotNotAvailable
				}
				_, err = repo.Create(txCtx, newReservation("10:00", "10:30"))
				return err
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	active, err := repo.GetActiveByTrainerAndDate(ctx, 1, monday)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestChangeLogRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	logs := NewStore().ChangeLogs()

	for _, status := range []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed} {
		_, err := logs.Append(ctx, &domain.ChangeLogEntry{ReservationID: 5, NewStatus: status})
		require.NoError(t, err)
	}
	_, err := logs.Append(ctx, &domain.ChangeLogEntry{ReservationID: 6, NewStatus: domain.StatusPending})
	require.NoError(t, err)

	entries, err := logs.ListByReservation(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.StatusConfirmed, entries[0].NewStatus)
	assert.Equal(t, domain.StatusPending, entries[1].NewStatus)
}

func TestRegistrationRepository_DecrementFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	store.PutRegistration(domain.PTRegistration{ID: 3, MemberID: 7, TotalSessions: 10, RemainingSessions: 1})
	repo := store.Registrations()

	reg, err := repo.DecrementRemainingSessions(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.RemainingSessions)

	reg, err = repo.DecrementRemainingSessions(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.RemainingSessions)

	_, err = repo.DecrementRemainingSessions(ctx, 99)
	assert.ErrorIs(t, err, ptregistration.ErrRegistrationNotFound)
}

func TestScheduleRepository_Seed(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	store.Load(Seed{
		Schedules: []domain.WeeklySchedule{
			{TrainerID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "18:00", IsAvailable: true},
			{TrainerID: 1, DayOfWeek: 2, StartTime: "12:00", EndTime: "20:00", IsAvailable: true},
		},
		Blocked: []domain.BlockedInterval{
			{TrainerID: 1, Date: monday, StartTime: "13:00", EndTime: "14:00", Reason: "meeting"},
			{TrainerID: 1, Date: monday.AddDate(0, 0, 7), StartTime: "09:00", EndTime: "10:00"},
		},
	})
	repo := store.Schedules()

	ws, err := repo.GetWeeklySchedule(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "09:00", ws.StartTime.String())

	_, err = repo.GetWeeklySchedule(ctx, 1, 1)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)

	weekly, err := repo.ListWeeklyByTrainer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	assert.Equal(t, 0, weekly[0].DayOfWeek)

	blocked, err := repo.GetBlockedIntervals(ctx, 1, monday)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, "meeting", blocked[0].Reason)
}
