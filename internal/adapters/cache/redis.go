package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"devevent/internal/domain"
)

const eventListKey = "devevent:events:list"

type redisEventListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEventListCache returns an EventListCache storing the listing as JSON
// under a single key that expires after ttl.
func NewRedisEventListCache(client *redis.Client, ttl time.Duration) domain.EventListCache {
	return &redisEventListCache{client: client, ttl: ttl}
}

func (c *redisEventListCache) Get(ctx context.Context) ([]*domain.Event, bool, error) {
	raw, err := c.client.Get(ctx, eventListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var events []*domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false, fmt.Errorf("decode cached events: %w", err)
	}
	return events, true, nil
}

func (c *redisEventListCache) Set(ctx context.Context, events []*domain.Event) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return c.client.Set(ctx, eventListKey, raw, c.ttl).Err()
}

func (c *redisEventListCache) Purge(ctx context.Context) error {
	return c.client.Del(ctx, eventListKey).Err()
}
