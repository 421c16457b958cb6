package callback

import "paymentrelay/internal/domain/order"

// PaymentStatus is the normalized state of a payment record.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
	PaymentUnknown PaymentStatus = "unknown"
)

// Result codes sent by the processor.
const (
	ResultCodeSuccess = "00"
	ResultCodePending = "01"
	ResultCodeFailed  = "02"
)

// PaymentStatusFor maps a processor result code to a payment status.
// Unrecognized codes map to unknown; they are valid input, not an error.
func PaymentStatusFor(resultCode string) PaymentStatus {
	switch resultCode {
	case ResultCodeSuccess:
		return PaymentSuccess
	case ResultCodePending:
		return PaymentPending
	case ResultCodeFailed:
		return PaymentFailed
	default:
		return PaymentUnknown
	}
}

// OrderStatusFor maps a processor result code to an order status.
func OrderStatusFor(resultCode string) order.Status {
	switch resultCode {
	case ResultCodeSuccess:
		return order.StatusProcessing
	case ResultCodePending:
		return order.StatusUnpaid
	case ResultCodeFailed:
		return order.StatusCancelled
	default:
		return order.StatusUnknown
	}
}
