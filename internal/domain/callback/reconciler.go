package callback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"paymentrelay/pkg/metrics"
)

// StaleIntentSource lists intents that never reached fulfilled and have not
// been touched for at least olderThan.
type StaleIntentSource interface {
	FindStale(ctx context.Context, olderThan time.Duration, limit uint64) ([]Intent, error)
}

// Reconciler periodically sweeps the intent log and surfaces transitions
// that are stuck short of fulfilled. It does not replay them: a pending
// intent may mean the payment update never ran, and re-running it needs the
// original notification. The sweep keeps the gap visible until the processor
// re-delivers or an operator repairs the rows.
type Reconciler struct {
	intents  StaleIntentSource
	interval time.Duration
	batch    uint64
}

func NewReconciler(intents StaleIntentSource, interval time.Duration, batch uint64) *Reconciler {
	return &Reconciler{intents: intents, interval: interval, batch: batch}
}

// Run sweeps on the configured interval until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				slog.ErrorContext(ctx, "intent sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Sweep runs one pass over the stale intents. The sweep interval doubles as
// the grace period, so an intent from an in-flight callback never shows up.
func (r *Reconciler) Sweep(ctx context.Context) error {
	stale, err := r.intents.FindStale(ctx, r.interval, r.batch)
	if err != nil {
		return fmt.Errorf("find stale intents: %w", err)
	}

	counts := map[IntentState]int{}
	for _, intent := range stale {
		counts[intent.State]++
		slog.WarnContext(ctx, "stale transition intent",
			slog.String("intent_id", intent.ID.String()),
			slog.String("merchant_order_id", intent.MerchantOrderID),
			slog.String("reference", intent.Reference),
			slog.String("state", string(intent.State)),
		)
	}

	for _, state := range []IntentState{IntentPending, IntentPaymentCommitted} {
		metrics.StaleIntents.WithLabelValues(string(state)).Set(float64(counts[state]))
	}
	return nil
}
