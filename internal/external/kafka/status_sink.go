package kafka

import (
	"context"

	"paymentrelay/internal/domain/callback"
	"paymentrelay/internal/messaging"
)

const statusEventType = "payment.status_changed"

// StatusSink publishes payment status events to the durable event stream.
// It adapts the domain-facing EventSink port onto a messaging.Publisher.
type StatusSink struct {
	publisher messaging.Publisher
}

func NewStatusSink(publisher messaging.Publisher) *StatusSink {
	return &StatusSink{publisher: publisher}
}

// StatusChanged wraps the event in an envelope keyed by merchant order id,
// so all events for one order land on the same partition in order.
func (s *StatusSink) StatusChanged(ctx context.Context, event callback.StatusEvent) error {
	env, err := messaging.NewEnvelope(event.MerchantOrderID, statusEventType, event)
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, env)
}
