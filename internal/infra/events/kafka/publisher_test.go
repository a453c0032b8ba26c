package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublish_WritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w)

	event := &domain.Event{
		ID:            "evt-1",
		Type:          domain.EventReservationCancelled,
		RecipientRole: domain.RecipientMember,
		RecipientID:   7,
		ReservationID: 42,
		OccurredAt:    time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, "event_id", msg.Headers[0].Key)
	assert.Equal(t, "evt-1", string(msg.Headers[0].Value))
	assert.Equal(t, "reservation_cancelled", string(msg.Headers[1].Value))

	var decoded domain.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(7), decoded.RecipientID)
	assert.Equal(t, domain.RecipientMember, decoded.RecipientRole)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublish_WriteError(t *testing.T) {
	p := newPublisher(&fakeWriter{err: errors.New("leader not available")})

	err := p.Publish(context.Background(), &domain.Event{ID: "evt-2", Type: domain.EventPTCompleted})
	assert.ErrorIs(t, err, ErrWrite)
}
