package callback

import (
	"context"
	"time"

	"paymentrelay/internal/domain/order"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=callback

// PaymentKey locates the unique payment row for a notification.
type PaymentKey struct {
	PaymentID string // merchant order id
	Reference string // processor transaction reference
}

// PaymentUpdate holds the values written onto the payment row.
type PaymentUpdate struct {
	Method           string
	Status           PaymentStatus
	PublisherOrderID string
	MerchantUserID   string
	SpUserHash       string
	SettlementDate   string
	PaidAt           time.Time
	IssuerCode       string
}

// PaymentRecord is the payment row as returned by a conditional update.
type PaymentRecord struct {
	PaymentID string
	Reference string
	OrderID   int64
	Status    PaymentStatus
}

// PaymentStore applies conditional updates to payment rows. Rows are never
// created here; they pre-exist from the order creation flow.
type PaymentStore interface {
	ApplyCallback(ctx context.Context, key PaymentKey, upd PaymentUpdate) (PaymentRecord, error)
}

// OrderStore applies the derived status to the order row.
type OrderStore interface {
	UpdateStatus(ctx context.Context, orderID int64, status order.Status) error
}

// Intent is a durable record of one in-flight transition, written before the
// payment update so a crash between the two store writes is detectable.
type Intent struct {
	ID              uuid.UUID
	MerchantOrderID string
	Reference       string
	ResultCode      string
	PaymentStatus   PaymentStatus
	OrderStatus     order.Status
	State           IntentState
}

// IntentState tracks how far a transition got.
type IntentState string

const (
	IntentPending          IntentState = "pending"
	IntentPaymentCommitted IntentState = "payment_committed"
	IntentFulfilled        IntentState = "fulfilled"
)

// IntentLog persists transition intents for the out-of-band reconciler.
type IntentLog interface {
	Begin(ctx context.Context, intent Intent) error
	MarkState(ctx context.Context, id uuid.UUID, state IntentState) error
}

// StatusSnapshot is the short-lived order snapshot served to polling clients.
type StatusSnapshot struct {
	PaymentID string       `json:"payment_id"`
	OrderID   int64        `json:"order_id"`
	Status    order.Status `json:"status"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// StatusCache stores the last-known status snapshot and fans it out over
// pub/sub. Not authoritative; the order store always wins.
type StatusCache interface {
	RecordStatus(ctx context.Context, snapshot StatusSnapshot) error
	Publish(ctx context.Context, snapshot StatusSnapshot) error
}

// StatusEvent is published to the durable event stream after a clean
// transition.
type StatusEvent struct {
	MerchantOrderID string        `json:"merchant_order_id"`
	Reference       string        `json:"reference"`
	OrderID         int64         `json:"order_id"`
	ResultCode      string        `json:"result_code"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	OrderStatus     order.Status  `json:"order_status"`
	OccurredAt      time.Time     `json:"occurred_at"`
}

// EventSink publishes status events for downstream consumers.
type EventSink interface {
	StatusChanged(ctx context.Context, event StatusEvent) error
}
