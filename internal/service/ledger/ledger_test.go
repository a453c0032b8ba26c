package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func TestDebitSession(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.PutRegistration(domain.PTRegistration{ID: 1, MemberID: 7, TotalSessions: 3, RemainingSessions: 1})
	l := NewLedger(store.Registrations(), logger.NewDiscard())

	reg, err := l.DebitSession(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.RemainingSessions)

	// повторное списание с нулевого остатка не уходит в минус и не ошибка
	reg, err = l.DebitSession(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.RemainingSessions)
}

func TestDebitSession_NotFound(t *testing.T) {
	l := NewLedger(memory.NewStore().Registrations(), logger.NewDiscard())

	_, err := l.DebitSession(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}
