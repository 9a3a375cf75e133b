package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"triporganizer/internal/domain"
)

const futureTripsKey = "trips:future"

type tripCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTripCache returns a TripCache backed by Redis. Entries expire after ttl;
// mutations invalidate eagerly, the TTL only bounds staleness if an
// invalidation is lost.
func NewTripCache(client *redis.Client, ttl time.Duration) domain.TripCache {
	return &tripCache{client: client, ttl: ttl}
}

func (c *tripCache) GetFuture(ctx context.Context) ([]*domain.Trip, error) {
	raw, err := c.client.Get(ctx, futureTripsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", futureTripsKey, err)
	}
	var trips []*domain.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		// Corrupt entry: drop it and report a miss.
		c.client.Del(ctx, futureTripsKey)
		return nil, nil
	}
	return trips, nil
}

func (c *tripCache) SetFuture(ctx context.Context, trips []*domain.Trip) error {
	raw, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("marshal trips: %w", err)
	}
	if err := c.client.Set(ctx, futureTripsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", futureTripsKey, err)
	}
	return nil
}

func (c *tripCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, futureTripsKey).Err(); err != nil {
		return fmt.Errorf("del %s: %w", futureTripsKey, err)
	}
	return nil
}
