package health

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// KafkaChecker probes the status event stream's brokers. Reaching any one
// broker is enough; the writer balances across the rest.
type KafkaChecker struct {
	brokers []string
}

func NewKafkaChecker(brokers []string) *KafkaChecker {
	return &KafkaChecker{brokers: brokers}
}

func (c *KafkaChecker) Name() string { return "kafka" }

func (c *KafkaChecker) Check(ctx context.Context) Result {
	for _, broker := range c.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			continue
		}
		conn.Close()
		return Result{Status: StatusUp}
	}
	return Result{Status: StatusDown, Message: "no broker reachable"}
}
