//go:build integration

package reservation_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	changeLogRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/changelog"
	recordRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptrecord"
	registrationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptregistration"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("reservations"),
		postgrescontainer.WithUsername("reservations"),
		postgrescontainer.WithPassword("reservations"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.Eventually(t, func() bool { return db.PingContext(ctx) == nil }, 30*time.Second, 500*time.Millisecond)

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	migration, err := os.ReadFile(filepath.Join(filepath.Dir(filename), "../../../../migrations/0001_init.up.sql"))
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, string(migration))
	require.NoError(t, err)

	return db
}

func newReservation(start, end string) *domain.Reservation {
	return &domain.Reservation{
		MemberID:        7,
		TrainerID:       3,
		Date:            monday,
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		DurationMinutes: 30,
		Status:          domain.StatusPending,
		RepeatPolicy:    domain.RepeatNone,
		Notes:           "first session",
	}
}

func TestPostgresRepositories(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	reservations := reservation.NewRepository(db)
	changeLogs := changeLogRepo.NewRepository(db)
	registrations := registrationRepo.NewRepository(db)
	schedules := scheduleRepo.NewRepository(db)
	records := recordRepo.NewRepository(db)
	txManager := simpletxmanager.NewTransactionManager(db)

	t.Run("schedule upsert keeps one row per day", func(t *testing.T) {
		_, err := schedules.UpsertWeeklySchedule(ctx, &domain.WeeklySchedule{
			TrainerID: 3, DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00", IsAvailable: true,
		})
		require.NoError(t, err)
		_, err = schedules.UpsertWeeklySchedule(ctx, &domain.WeeklySchedule{
			TrainerID: 3, DayOfWeek: 0, StartTime: "08:00", EndTime: "18:00", IsAvailable: true,
		})
		require.NoError(t, err)

		ws, err := schedules.GetWeeklySchedule(ctx, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, "08:00", ws.StartTime.String())

		all, err := schedules.ListWeeklyByTrainer(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("blocked interval lifecycle", func(t *testing.T) {
		b, err := schedules.CreateBlockedInterval(ctx, &domain.BlockedInterval{
			TrainerID: 3, Date: monday, StartTime: "13:00", EndTime: "14:00", Reason: "meeting",
		})
		require.NoError(t, err)

		list, err := schedules.GetBlockedIntervals(ctx, 3, monday)
		require.NoError(t, err)
		require.Len(t, list, 1)

		require.NoError(t, schedules.DeleteBlockedInterval(ctx, 3, b.ID))
		assert.ErrorIs(t, schedules.DeleteBlockedInterval(ctx, 3, b.ID), scheduleRepo.ErrBlockedIntervalNotFound)
	})

	t.Run("overlap is rejected by the exclusion constraint", func(t *testing.T) {
		created, err := reservations.Create(ctx, newReservation("10:00", "10:30"))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "10:30", created.EndTime.String())

		_, err = reservations.Create(ctx, newReservation("10:15", "10:45"))
		assert.ErrorIs(t, err, reservation.ErrSlotNotAvailable)

		_, err = reservations.Create(ctx, newReservation("10:30", "11:00"))
		assert.NoError(t, err)

		// отменённое бронирование освобождает интервал
		_, err = reservations.UpdateStatus(ctx, created.ID, domain.StatusCancelled, created.Notes)
		require.NoError(t, err)
		_, err = reservations.Create(ctx, newReservation("10:00", "10:30"))
		assert.NoError(t, err)
	})

	t.Run("list and change log", func(t *testing.T) {
		trainerID := int64(3)
		list, err := reservations.List(ctx, domain.ReservationFilter{
			TrainerID: &trainerID,
			StartDate: &monday,
			EndDate:   &monday,
			Statuses:  domain.ActiveStatuses,
		})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "10:00", list[0].StartTime.String())

		_, err = changeLogs.Append(ctx, &domain.ChangeLogEntry{
			ReservationID: list[0].ID, ChangeType: domain.ChangeCreated, ChangedBy: "7 (member)", NewStatus: domain.StatusPending,
		})
		require.NoError(t, err)
		_, err = changeLogs.Append(ctx, &domain.ChangeLogEntry{
			ReservationID: list[0].ID, ChangeType: domain.ChangeConfirmed, ChangedBy: "3 (trainer)",
			PreviousStatus: domain.StatusPending, NewStatus: domain.StatusConfirmed,
		})
		require.NoError(t, err)

		entries, err := changeLogs.ListByReservation(ctx, list[0].ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.ChangeConfirmed, entries[0].ChangeType)
	})

	t.Run("debit floors at zero", func(t *testing.T) {
		var regID int64
		require.NoError(t, db.QueryRowContext(ctx,
			`INSERT INTO pt_registrations (member_id, total_sessions, remaining_sessions) VALUES (7, 2, 1) RETURNING id`,
		).Scan(&regID))

		reg, err := registrations.DecrementRemainingSessions(ctx, regID)
		require.NoError(t, err)
		assert.Equal(t, 0, reg.RemainingSessions)

		reg, err = registrations.DecrementRemainingSessions(ctx, regID)
		require.NoError(t, err)
		assert.Equal(t, 0, reg.RemainingSessions)
	})

	t.Run("duration below thirty minutes is stored", func(t *testing.T) {
		res := newReservation("09:00", "09:15")
		res.TrainerID = 5
		res.DurationMinutes = 15

		created, err := reservations.Create(ctx, res)
		require.NoError(t, err)
		assert.Equal(t, 15, created.DurationMinutes)
	})

	t.Run("pt records read back by reservation and owner", func(t *testing.T) {
		first := newReservation("08:00", "08:30")
		first.TrainerID = 6
		first.Status = domain.StatusCompleted
		first, err := reservations.Create(ctx, first)
		require.NoError(t, err)

		second := newReservation("08:00", "08:30")
		second.TrainerID = 6
		second.Date = monday.AddDate(0, 0, 7)
		second.Status = domain.StatusCompleted
		second, err = reservations.Create(ctx, second)
		require.NoError(t, err)

		for _, res := range []*domain.Reservation{first, second} {
			_, err := records.Create(ctx, &domain.PTRecord{
				ReservationID: res.ID, TrainerID: 6, MemberID: 7, WorkoutDate: res.Date,
				WorkoutTime: res.StartTime, DurationMinutes: 30, Content: "deadlift", IsCompleted: true,
			})
			require.NoError(t, err)
		}

		got, err := records.GetByReservationID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "deadlift", got.Content)
		assert.Equal(t, "08:00", got.WorkoutTime.String())

		trainerID := int64(6)
		list, err := records.List(ctx, domain.PTRecordFilter{TrainerID: &trainerID})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ReservationID)

		list, err = records.List(ctx, domain.PTRecordFilter{TrainerID: &trainerID, EndDate: &monday})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, first.ID, list[0].ReservationID)

		_, err = records.GetByReservationID(ctx, 999999)
		assert.ErrorIs(t, err, recordRepo.ErrRecordNotFound)
	})

	// конкурентов выстраивает в очередь lock, а единственного победителя гарантируют
	// exclusion constraint и повтор на 40001
	t.Run("only one concurrent create per trainer slot wins", func(t *testing.T) {
		tuesday := monday.AddDate(0, 0, 1)
		var wg sync.WaitGroup
		errs := make([]error, 6)

		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = txManager.DoSerializable(ctx, func(txCtx context.Context) error {
					if err := reservations.LockTrainerDay(txCtx, 3, tuesday); err != nil {
						return err
					}
					active, err := reservations.GetActiveByTrainerAndDate(txCtx, 3, tuesday)
					if err != nil {
						return err
					}
					if len(active) > 0 {
						return reservation.ErrSlotNotAvailable
					}
					res := newReservation("15:00", "15:30")
					res.Date = tuesday
					_, err = reservations.Create(txCtx, res)
					return err
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}
