package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisChecker probes the status cache. The cache is a side channel, but
// a down Redis still fails readiness so the degradation is visible.
func NewRedisChecker(client *redis.Client) Checker {
	return pingChecker{
		name: "redis",
		ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
}
