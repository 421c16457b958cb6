// Package rediscache keeps the last-known order status in Redis for polling
// clients and fans status changes out over pub/sub. It is a side channel:
// when a key is missing, the order store is the authority.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paymentrelay/internal/domain/callback"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "payment_id:"

// StatusCache implements callback.StatusCache on a Redis client.
type StatusCache struct {
	client  *redis.Client
	channel string
	ttl     time.Duration
}

func New(client *redis.Client, channel string, ttl time.Duration) *StatusCache {
	return &StatusCache{client: client, channel: channel, ttl: ttl}
}

// Key returns the cache key for a payment id.
func Key(paymentID string) string {
	return keyPrefix + paymentID
}

// RecordStatus writes the snapshot under payment_id:<id> with the configured TTL.
func (c *StatusCache) RecordStatus(ctx context.Context, snapshot callback.StatusSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal status snapshot: %w", err)
	}

	if err := c.client.Set(ctx, Key(snapshot.PaymentID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache status for %s: %w", snapshot.PaymentID, err)
	}
	return nil
}

// Publish fans the snapshot out on the configured channel.
func (c *StatusCache) Publish(ctx context.Context, snapshot callback.StatusSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal status snapshot: %w", err)
	}

	if err := c.client.Publish(ctx, c.channel, data).Err(); err != nil {
		return fmt.Errorf("publish status for %s: %w", snapshot.PaymentID, err)
	}
	return nil
}

// GetStatus reads a cached snapshot. Returns nil without error on a miss.
func (c *StatusCache) GetStatus(ctx context.Context, paymentID string) (*callback.StatusSnapshot, error) {
	data, err := c.client.Get(ctx, Key(paymentID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("read status for %s: %w", paymentID, err)
	}

	var snapshot callback.StatusSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode status for %s: %w", paymentID, err)
	}
	return &snapshot, nil
}
