package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

var (
	today       = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	adminActor  = domain.Actor{ID: "admin", Role: domain.ActorAdmin}
	ownTrainer  = domain.Actor{ID: "3", Role: domain.ActorTrainer}
	otherMember = domain.Actor{ID: "3", Role: domain.ActorMember}
)

func newService(store *memory.Store) *Service {
	svc := NewService(store.Schedules(), logger.NewDiscard())
	svc.now = func() time.Time { return today.Add(15 * time.Hour) }
	return svc
}

func TestGetTrainerSchedule_DefaultPeriod(t *testing.T) {
	store := memory.NewStore()
	store.PutWeeklySchedule(domain.WeeklySchedule{TrainerID: 3, DayOfWeek: 2, StartTime: "09:00", EndTime: "18:00", IsAvailable: true})
	store.PutWeeklySchedule(domain.WeeklySchedule{TrainerID: 3, DayOfWeek: 0, StartTime: "10:00", EndTime: "14:00", IsAvailable: true})
	store.PutWeeklySchedule(domain.WeeklySchedule{TrainerID: 4, DayOfWeek: 0, StartTime: "10:00", EndTime: "14:00", IsAvailable: true})
	store.AddBlockedInterval(domain.BlockedInterval{TrainerID: 3, Date: today.AddDate(0, 0, 3), StartTime: "12:00", EndTime: "13:00"})
	store.AddBlockedInterval(domain.BlockedInterval{TrainerID: 3, Date: today.AddDate(0, 0, 40), StartTime: "12:00", EndTime: "13:00"})

	resp, err := newService(store).GetTrainerSchedule(context.Background(), &models.GetScheduleRequest{TrainerID: 3})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-02", resp.From)
	assert.Equal(t, "2025-06-29", resp.To)
	require.Len(t, resp.Weekly, 2)
	assert.Equal(t, 0, resp.Weekly[0].DayOfWeek)
	assert.Equal(t, 2, resp.Weekly[1].DayOfWeek)
	require.Len(t, resp.Blocked, 1)
	assert.Equal(t, "2025-06-05", resp.Blocked[0].Date)
}

func TestGetTrainerSchedule_InvalidPeriod(t *testing.T) {
	svc := newService(memory.NewStore())

	_, err := svc.GetTrainerSchedule(context.Background(), &models.GetScheduleRequest{
		TrainerID: 3, From: ptr.Ptr(today), To: ptr.Ptr(today.AddDate(0, 0, -1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetTrainerSchedule(context.Background(), &models.GetScheduleRequest{
		TrainerID: 3, From: ptr.Ptr(today), To: ptr.Ptr(today.AddDate(1, 0, 0)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertWeeklySchedule(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	first, err := svc.UpsertWeeklySchedule(ctx, &models.UpsertWeeklyScheduleRequest{
		Actor: ownTrainer, TrainerID: 3, DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	assert.True(t, first.IsAvailable)

	second, err := svc.UpsertWeeklySchedule(ctx, &models.UpsertWeeklyScheduleRequest{
		Actor: adminActor, TrainerID: 3, DayOfWeek: 0, StartTime: "10:00", EndTime: "12:00", IsAvailable: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := store.Schedules().GetWeeklySchedule(ctx, 3, 0)
	require.NoError(t, err)
	assert.False(t, stored.IsAvailable)
	assert.Equal(t, "10:00", stored.StartTime.String())
}

func TestUpsertWeeklySchedule_Validation(t *testing.T) {
	svc := newService(memory.NewStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.UpsertWeeklyScheduleRequest
		wantErr error
	}{
		{"other trainer", models.UpsertWeeklyScheduleRequest{Actor: domain.Actor{ID: "4", Role: domain.ActorTrainer}, TrainerID: 3, StartTime: "09:00", EndTime: "10:00"}, ErrAccessDenied},
		{"member", models.UpsertWeeklyScheduleRequest{Actor: otherMember, TrainerID: 3, StartTime: "09:00", EndTime: "10:00"}, ErrAccessDenied},
		{"bad day", models.UpsertWeeklyScheduleRequest{Actor: adminActor, TrainerID: 3, DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}, ErrInvalidInput},
		{"inverted range", models.UpsertWeeklyScheduleRequest{Actor: adminActor, TrainerID: 3, StartTime: "10:00", EndTime: "09:00"}, ErrInvalidInput},
		{"bad time", models.UpsertWeeklyScheduleRequest{Actor: adminActor, TrainerID: 3, StartTime: "9am", EndTime: "10:00"}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.UpsertWeeklySchedule(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBlockedIntervals(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	created, err := svc.AddBlockedInterval(ctx, &models.CreateBlockedIntervalRequest{
		Actor: ownTrainer, TrainerID: 3, Date: "2025-06-04", StartTime: "12:00", EndTime: "13:00", Reason: "dentist",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", created.Date)

	blocked, err := store.Schedules().GetBlockedIntervals(ctx, 3, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, blocked, 1)

	_, err = svc.AddBlockedInterval(ctx, &models.CreateBlockedIntervalRequest{
		Actor: ownTrainer, TrainerID: 3, Date: "04.06.2025", StartTime: "12:00", EndTime: "13:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.DeleteBlockedInterval(ctx, domain.Actor{ID: "4", Role: domain.ActorTrainer}, 3, created.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, svc.DeleteBlockedInterval(ctx, adminActor, 3, created.ID))
	assert.ErrorIs(t, svc.DeleteBlockedInterval(ctx, adminActor, 3, created.ID), ErrBlockedIntervalNotFound)
}
