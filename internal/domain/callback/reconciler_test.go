package callback

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staleIntentSourceStub struct {
	intents   []Intent
	err       error
	olderThan time.Duration
	limit     uint64
}

func (s *staleIntentSourceStub) FindStale(_ context.Context, olderThan time.Duration, limit uint64) ([]Intent, error) {
	s.olderThan = olderThan
	s.limit = limit
	return s.intents, s.err
}

func TestSweep(t *testing.T) {
	t.Run("should pass the grace period and batch size through", func(t *testing.T) {
		source := &staleIntentSourceStub{}
		rec := NewReconciler(source, time.Minute, 50)

		require.NoError(t, rec.Sweep(context.Background()))
		assert.Equal(t, time.Minute, source.olderThan)
		assert.Equal(t, uint64(50), source.limit)
	})

	t.Run("should tolerate stuck intents in both states", func(t *testing.T) {
		source := &staleIntentSourceStub{intents: []Intent{
			{ID: uuid.New(), MerchantOrderID: "INV-1", Reference: "R1", State: IntentPending},
			{ID: uuid.New(), MerchantOrderID: "INV-2", Reference: "R2", State: IntentPaymentCommitted},
			{ID: uuid.New(), MerchantOrderID: "INV-3", Reference: "R3", State: IntentPaymentCommitted},
		}}
		rec := NewReconciler(source, 0, 10)

		require.NoError(t, rec.Sweep(context.Background()))
	})

	t.Run("should propagate source failures", func(t *testing.T) {
		source := &staleIntentSourceStub{err: assert.AnError}
		rec := NewReconciler(source, 0, 10)

		require.ErrorIs(t, rec.Sweep(context.Background()), assert.AnError)
	})
}
