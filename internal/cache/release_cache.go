package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/feralclo/release-engine/internal/dto"
)

const defaultAvailabilityTTL = 30 * time.Second

// RedisAvailabilityCache stores the buyer-facing availability payload in
// Redis. Errors are returned to the caller, which treats them as a miss.
type RedisAvailabilityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisAvailabilityCache creates a cache backed by the given Redis client.
// A zero ttl falls back to the default.
func NewRedisAvailabilityCache(client redis.UniversalClient, ttl time.Duration) *RedisAvailabilityCache {
	if ttl <= 0 {
		ttl = defaultAvailabilityTTL
	}
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func availabilityKey(eventID string) string {
	return "availability:" + eventID
}

// Get returns the cached payload for the event, or (nil, nil) on a miss.
func (c *RedisAvailabilityCache) Get(ctx context.Context, eventID string) (*dto.AvailabilityResponse, error) {
	data, err := c.client.Get(ctx, availabilityKey(eventID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var payload dto.AvailabilityResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &payload, nil
}

// Set stores the payload under the event key with the configured TTL.
func (c *RedisAvailabilityCache) Set(ctx context.Context, eventID string, payload *dto.AvailabilityResponse) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, availabilityKey(eventID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached payload for the event. Deleting a missing
// key is not an error.
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, eventID string) error {
	if err := c.client.Del(ctx, availabilityKey(eventID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
