package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

type recordingSink struct {
	events []*domain.Event
	err    error
	ctxErr error
}

func (s *recordingSink) Publish(ctx context.Context, event *domain.Event) error {
	s.ctxErr = ctx.Err()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func TestEmit_Published(t *testing.T) {
	sink := &recordingSink{}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	e := NewEmitter(sink, m, logger.NewDiscard(), time.Second)

	e.Emit(context.Background(), domain.EventReservationConfirmed, domain.RecipientMember, 7, 12,
		map[string]interface{}{"reservationId": int64(12)})
	e.Emit(context.Background(), domain.EventReservationConfirmed, domain.RecipientMember, 7, 12, nil)

	require.Len(t, sink.events, 2)
	first := sink.events[0]
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, sink.events[1].ID)
	assert.Equal(t, domain.EventReservationConfirmed, first.Type)
	assert.Equal(t, domain.RecipientMember, first.RecipientRole)
	assert.Equal(t, int64(7), first.RecipientID)
	assert.Equal(t, int64(12), first.ReservationID)
	assert.False(t, first.OccurredAt.IsZero())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsEmitted.WithLabelValues("test", "reservation_confirmed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsEmitFailed.WithLabelValues("test", "reservation_confirmed")))
}

func TestEmit_FailureIsSwallowedAndCounted(t *testing.T) {
	sink := &recordingSink{err: errors.New("connection refused")}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	e := NewEmitter(sink, m, logger.NewDiscard(), time.Second)

	assert.NotPanics(t, func() {
		e.Emit(context.Background(), domain.EventPTCompleted, domain.RecipientTrainer, 3, 12, nil)
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsEmitFailed.WithLabelValues("test", "pt_completed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsEmitted.WithLabelValues("test", "pt_completed")))
}

func TestEmit_CancelledRequestContextStillDelivers(t *testing.T) {
	sink := &recordingSink{}
	e := NewEmitter(sink, (*metrics.Metrics)(nil), logger.NewDiscard(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e.Emit(ctx, domain.EventReservationRequest, domain.RecipientTrainer, 3, 1, nil)

	require.Len(t, sink.events, 1)
	assert.NoError(t, sink.ctxErr)
}

func TestReservationPayload(t *testing.T) {
	r := &domain.Reservation{
		ID: 5, MemberID: 7, TrainerID: 3,
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "10:30",
		Status: domain.StatusPending,
	}

	payload := ReservationPayload(r)
	assert.Equal(t, "2025-06-02", payload["date"])
	assert.Equal(t, "10:00", payload["startTime"])
	assert.Equal(t, "pending", payload["status"])
	_, hasNotes := payload["notes"]
	assert.False(t, hasNotes)
}
