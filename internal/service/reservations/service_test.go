package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func date(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func seedReservation(t *testing.T, store *memory.Store, memberID, trainerID int64, day int, start types.TimeString, status domain.ReservationStatus) *domain.Reservation {
	t.Helper()
	end, err := start.AddMinutes(30)
	require.NoError(t, err)

	res, err := store.Reservations().Create(context.Background(), &domain.Reservation{
		MemberID:        memberID,
		TrainerID:       trainerID,
		Date:            date(day),
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: 30,
		Status:          status,
		RepeatPolicy:    domain.RepeatNone,
	})
	require.NoError(t, err)
	return res
}

func newService(store *memory.Store) *Service {
	return NewService(store.Reservations(), store.ChangeLogs(), store.Records(), logger.NewDiscard())
}

func TestGetByID(t *testing.T) {
	store := memory.NewStore()
	res := seedReservation(t, store, 7, 3, 2, "10:00", domain.StatusPending)
	svc := newService(store)

	got, err := svc.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", got.ReservationDate)
	assert.Equal(t, "10:00", got.StartTime)
	assert.Equal(t, "10:30", got.EndTime)
	assert.Equal(t, "pending", got.Status)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListByMember(t *testing.T) {
	store := memory.NewStore()
	seedReservation(t, store, 7, 3, 10, "09:00", domain.StatusConfirmed)
	seedReservation(t, store, 7, 3, 2, "11:00", domain.StatusPending)
	seedReservation(t, store, 7, 4, 2, "08:00", domain.StatusCancelled)
	seedReservation(t, store, 8, 3, 2, "12:00", domain.StatusPending)
	svc := newService(store)
	ctx := context.Background()

	t.Run("all ordered by date and start", func(t *testing.T) {
		list, err := svc.ListByMember(ctx, &models.ListMemberReservationsRequest{MemberID: 7})
		require.NoError(t, err)
		require.Len(t, list.Reservations, 3)
		assert.Equal(t, "08:00", list.Reservations[0].StartTime)
		assert.Equal(t, "11:00", list.Reservations[1].StartTime)
		assert.Equal(t, "2025-06-10", list.Reservations[2].ReservationDate)
	})

	t.Run("period and status", func(t *testing.T) {
		list, err := svc.ListByMember(ctx, &models.ListMemberReservationsRequest{
			MemberID:  7,
			StartDate: ptr.Ptr(date(1)),
			EndDate:   ptr.Ptr(date(5)),
			Status:    ptr.Ptr("pending"),
		})
		require.NoError(t, err)
		require.Len(t, list.Reservations, 1)
		assert.Equal(t, "11:00", list.Reservations[0].StartTime)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.ListByMember(ctx, &models.ListMemberReservationsRequest{MemberID: 7, Status: ptr.Ptr("in_progress")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted period", func(t *testing.T) {
		_, err := svc.ListByMember(ctx, &models.ListMemberReservationsRequest{
			MemberID: 7, StartDate: ptr.Ptr(date(5)), EndDate: ptr.Ptr(date(1)),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		list, err := svc.ListByMember(ctx, &models.ListMemberReservationsRequest{MemberID: 42})
		require.NoError(t, err)
		assert.NotNil(t, list.Reservations)
		assert.Empty(t, list.Reservations)
	})
}

func TestListByTrainer(t *testing.T) {
	store := memory.NewStore()
	seedReservation(t, store, 7, 3, 2, "10:00", domain.StatusPending)
	seedReservation(t, store, 8, 3, 2, "11:00", domain.StatusConfirmed)
	seedReservation(t, store, 9, 3, 3, "10:00", domain.StatusPending)
	svc := newService(store)

	list, err := svc.ListByTrainer(context.Background(), &models.ListTrainerReservationsRequest{
		TrainerID: 3,
		Date:      ptr.Ptr(date(2)),
	})
	require.NoError(t, err)
	assert.Len(t, list.Reservations, 2)

	list, err = svc.ListByTrainer(context.Background(), &models.ListTrainerReservationsRequest{
		TrainerID: 3,
		Status:    ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Len(t, list.Reservations, 2)
}

func TestGetChangeLog(t *testing.T) {
	store := memory.NewStore()
	res := seedReservation(t, store, 7, 3, 2, "10:00", domain.StatusPending)
	ctx := context.Background()

	_, err := store.ChangeLogs().Append(ctx, &domain.ChangeLogEntry{
		ReservationID: res.ID, ChangeType: domain.ChangeCreated, ChangedBy: "7", NewStatus: domain.StatusPending,
	})
	require.NoError(t, err)
	_, err = store.ChangeLogs().Append(ctx, &domain.ChangeLogEntry{
		ReservationID: res.ID, ChangeType: domain.ChangeConfirmed, ChangedBy: "3",
		PreviousStatus: domain.StatusPending, NewStatus: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	svc := newService(store)
	log, err := svc.GetChangeLog(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, log.Entries, 2)
	assert.Equal(t, "confirmed", log.Entries[0].ChangeType)
	require.NotNil(t, log.Entries[0].PreviousStatus)
	assert.Equal(t, "pending", *log.Entries[0].PreviousStatus)
	assert.Nil(t, log.Entries[1].PreviousStatus)

	_, err = svc.GetChangeLog(ctx, 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func seedRecord(t *testing.T, store *memory.Store, res *domain.Reservation, trainerID int64) *domain.PTRecord {
	t.Helper()
	record, err := store.Records().Create(context.Background(), &domain.PTRecord{
		ReservationID:   res.ID,
		TrainerID:       trainerID,
		MemberID:        res.MemberID,
		WorkoutDate:     res.Date,
		WorkoutTime:     res.StartTime,
		DurationMinutes: res.DurationMinutes,
		Content:         "squats",
		IsCompleted:     true,
	})
	require.NoError(t, err)
	return record
}

func TestGetRecord(t *testing.T) {
	store := memory.NewStore()
	done := seedReservation(t, store, 7, 3, 2, "10:00", domain.StatusCompleted)
	open := seedReservation(t, store, 7, 3, 3, "10:00", domain.StatusConfirmed)
	seedRecord(t, store, done, 5)
	svc := newService(store)
	ctx := context.Background()

	got, err := svc.GetRecord(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, done.ID, got.ReservationID)
	assert.Equal(t, int64(5), got.TrainerID)
	assert.Equal(t, "2025-06-02", got.WorkoutDate)
	assert.Equal(t, "10:00", got.WorkoutTime)
	assert.Equal(t, "squats", got.Content)

	_, err = svc.GetRecord(ctx, open.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = svc.GetRecord(ctx, 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListRecords(t *testing.T) {
	store := memory.NewStore()
	first := seedReservation(t, store, 7, 3, 2, "10:00", domain.StatusCompleted)
	second := seedReservation(t, store, 7, 3, 9, "10:00", domain.StatusCompleted)
	other := seedReservation(t, store, 8, 4, 5, "10:00", domain.StatusCompleted)
	seedRecord(t, store, first, 3)
	seedRecord(t, store, second, 3)
	seedRecord(t, store, other, 4)
	svc := newService(store)
	ctx := context.Background()

	t.Run("by member, newest first", func(t *testing.T) {
		list, err := svc.ListRecords(ctx, &models.ListRecordsRequest{MemberID: ptr.Ptr(int64(7))})
		require.NoError(t, err)
		require.Len(t, list.Records, 2)
		assert.Equal(t, "2025-06-09", list.Records[0].WorkoutDate)
		assert.Equal(t, "2025-06-02", list.Records[1].WorkoutDate)
	})

	t.Run("by trainer and period", func(t *testing.T) {
		list, err := svc.ListRecords(ctx, &models.ListRecordsRequest{
			TrainerID: ptr.Ptr(int64(3)),
			StartDate: ptr.Ptr(date(5)),
			EndDate:   ptr.Ptr(date(30)),
		})
		require.NoError(t, err)
		require.Len(t, list.Records, 1)
		assert.Equal(t, second.ID, list.Records[0].ReservationID)
	})

	t.Run("owner is required", func(t *testing.T) {
		_, err := svc.ListRecords(ctx, &models.ListRecordsRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		list, err := svc.ListRecords(ctx, &models.ListRecordsRequest{TrainerID: ptr.Ptr(int64(42))})
		require.NoError(t, err)
		assert.NotNil(t, list.Records)
		assert.Empty(t, list.Records)
	})
}
