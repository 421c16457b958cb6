package callback

import "errors"

var (
	// ErrInvalidSignature means the notification failed authentication.
	// Nothing was mutated.
	ErrInvalidSignature = errors.New("invalid callback signature")

	// ErrPaymentNotFound means no payment row matched the
	// (merchant order id, reference) pair. Nothing was mutated.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrOrderInconsistent means the payment update committed but no order
	// row matched the recovered order id. The store is in a half-applied
	// state that the reconciler has to repair from the intent log.
	ErrOrderInconsistent = errors.New("order not found after payment update")

	// ErrStoreUnavailable means a transient store fault. The whole
	// notification is safe to retry because updates are conditional
	// overwrites.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
