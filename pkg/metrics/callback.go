package metrics

import "github.com/prometheus/client_golang/prometheus"

// Callback outcome labels.
const (
	OutcomeSuccess          = "success"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomePaymentNotFound  = "payment_not_found"
	OutcomeInconsistent     = "order_inconsistent"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeError            = "error"
)

var (
	CallbacksProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "callback",
			Name:      "processed_total",
			Help:      "Processed payment callbacks by outcome",
		},
		[]string{"outcome"},
	)

	// CallbackPartialFailures counts callbacks where the payment update
	// committed but the order update found no matching row. These need
	// out-of-band reconciliation and must never blend into generic errors.
	CallbackPartialFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "callback",
			Name:      "partial_failures_total",
			Help:      "Callbacks with a committed payment update but no matching order row",
		},
	)

	// StaleIntents tracks transition intents that never reached fulfilled,
	// grouped by the state they are stuck in.
	StaleIntents = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "relay",
			Subsystem: "callback",
			Name:      "stale_intents",
			Help:      "Transition intents stuck short of fulfilled, by state",
		},
		[]string{"state"},
	)
)

func init() {
	Registry.MustRegister(CallbacksProcessed, CallbackPartialFailures, StaleIntents)
}
