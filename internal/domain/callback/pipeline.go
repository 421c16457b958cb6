package callback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"paymentrelay/internal/domain/order"
	"paymentrelay/pkg/metrics"

	"github.com/google/uuid"
)

// Pipeline orchestrates one inbound notification: verify the signature, map
// the result code, update the payment row, then the order row it points at.
// The two updates are not atomic across the store boundary; the intent log
// makes the gap observable. No retries happen here - re-delivery of the same
// notification is safe because both updates are conditional overwrites.
//
// Concurrent notifications for the same (merchant order id, reference) pair
// are not ordered; the row-level last-write-wins semantics of the store are
// the only serialization point. The processor is expected to send idempotent
// result codes per reference, which is an assumption, not a guarantee.
type Pipeline struct {
	signer   *Signer
	payments PaymentStore
	orders   OrderStore
	intents  IntentLog
	cache    StatusCache
	events   EventSink
}

func NewPipeline(signer *Signer, payments PaymentStore, orders OrderStore, intents IntentLog, cache StatusCache, events EventSink) *Pipeline {
	return &Pipeline{
		signer:   signer,
		payments: payments,
		orders:   orders,
		intents:  intents,
		cache:    cache,
		events:   events,
	}
}

// Process runs the notification through the pipeline. On ErrOrderInconsistent
// the payment update has already committed; callers must surface that
// distinctly from both clean success and clean rejection.
func (p *Pipeline) Process(ctx context.Context, n Notification) (*Receipt, error) {
	if !p.signer.Verify(n.Amount, n.MerchantOrderID, n.Signature) {
		// Log enough to spot forgery attempts; never the API key.
		slog.WarnContext(ctx, "callback signature rejected",
			slog.String("merchant_order_id", n.MerchantOrderID),
			slog.String("merchant_code", n.MerchantCode),
			slog.String("reference", n.Reference),
			slog.Int64("amount", n.Amount),
		)
		metrics.CallbacksProcessed.WithLabelValues(metrics.OutcomeInvalidSignature).Inc()
		return nil, ErrInvalidSignature
	}

	paymentStatus := PaymentStatusFor(n.ResultCode)
	orderStatus := OrderStatusFor(n.ResultCode)

	intent := Intent{
		ID:              uuid.New(),
		MerchantOrderID: n.MerchantOrderID,
		Reference:       n.Reference,
		ResultCode:      n.ResultCode,
		PaymentStatus:   paymentStatus,
		OrderStatus:     orderStatus,
	}
	if err := p.intents.Begin(ctx, intent); err != nil {
		metrics.CallbacksProcessed.WithLabelValues(outcomeFor(err)).Inc()
		return nil, fmt.Errorf("record intent: %w", err)
	}

	payment, err := p.payments.ApplyCallback(ctx,
		PaymentKey{PaymentID: n.MerchantOrderID, Reference: n.Reference},
		PaymentUpdate{
			Method:           n.PaymentCode,
			Status:           paymentStatus,
			PublisherOrderID: n.PublisherOrderID,
			MerchantUserID:   n.MerchantUserID,
			SpUserHash:       n.SpUserHash,
			SettlementDate:   n.SettlementDate,
			PaidAt:           time.Now().UTC(),
			IssuerCode:       n.IssuerCode,
		})
	if err != nil {
		metrics.CallbacksProcessed.WithLabelValues(outcomeFor(err)).Inc()
		return nil, fmt.Errorf("update payment %s/%s: %w", n.MerchantOrderID, n.Reference, err)
	}

	if err := p.orders.UpdateStatus(ctx, payment.OrderID, orderStatus); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			// Half-applied transition: payment committed, order missing.
			// Leave the intent in payment_committed for the reconciler.
			p.markIntent(ctx, intent.ID, IntentPaymentCommitted)
			slog.ErrorContext(ctx, "order missing after committed payment update",
				slog.String("merchant_order_id", n.MerchantOrderID),
				slog.String("reference", n.Reference),
				slog.Int64("order_id", payment.OrderID),
				slog.String("intent_id", intent.ID.String()),
			)
			metrics.CallbacksProcessed.WithLabelValues(metrics.OutcomeInconsistent).Inc()
			metrics.CallbackPartialFailures.Inc()
			return nil, fmt.Errorf("order %d: %w", payment.OrderID, ErrOrderInconsistent)
		}
		p.markIntent(ctx, intent.ID, IntentPaymentCommitted)
		metrics.CallbacksProcessed.WithLabelValues(outcomeFor(err)).Inc()
		return nil, fmt.Errorf("update order %d: %w", payment.OrderID, err)
	}

	p.markIntent(ctx, intent.ID, IntentFulfilled)
	p.notify(ctx, n, payment, paymentStatus, orderStatus)

	metrics.CallbacksProcessed.WithLabelValues(metrics.OutcomeSuccess).Inc()
	slog.InfoContext(ctx, "callback processed",
		slog.String("merchant_order_id", n.MerchantOrderID),
		slog.String("reference", n.Reference),
		slog.Int64("order_id", payment.OrderID),
		slog.String("payment_status", string(paymentStatus)),
		slog.String("order_status", string(orderStatus)),
	)
	return newReceipt(n, paymentStatus), nil
}

func (p *Pipeline) markIntent(ctx context.Context, id uuid.UUID, state IntentState) {
	if err := p.intents.MarkState(ctx, id, state); err != nil {
		slog.ErrorContext(ctx, "mark intent failed",
			slog.String("intent_id", id.String()),
			slog.String("state", string(state)),
			slog.String("error", err.Error()),
		)
	}
}

// notify pushes the new status to the cache, the pub/sub channel and the
// event stream. All best-effort: a dead side channel never fails a callback
// whose state transition already committed.
func (p *Pipeline) notify(ctx context.Context, n Notification, payment PaymentRecord, ps PaymentStatus, os order.Status) {
	snapshot := StatusSnapshot{
		PaymentID: n.MerchantOrderID,
		OrderID:   payment.OrderID,
		Status:    os,
		UpdatedAt: time.Now().UTC(),
	}
	if err := p.cache.RecordStatus(ctx, snapshot); err != nil {
		slog.WarnContext(ctx, "status cache write failed", slog.String("error", err.Error()))
	}
	if err := p.cache.Publish(ctx, snapshot); err != nil {
		slog.WarnContext(ctx, "status publish failed", slog.String("error", err.Error()))
	}

	event := StatusEvent{
		MerchantOrderID: n.MerchantOrderID,
		Reference:       n.Reference,
		OrderID:         payment.OrderID,
		ResultCode:      n.ResultCode,
		PaymentStatus:   ps,
		OrderStatus:     os,
		OccurredAt:      time.Now().UTC(),
	}
	if err := p.events.StatusChanged(ctx, event); err != nil {
		slog.WarnContext(ctx, "status event publish failed", slog.String("error", err.Error()))
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		return metrics.OutcomePaymentNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return metrics.OutcomeStoreUnavailable
	default:
		return metrics.OutcomeError
	}
}
