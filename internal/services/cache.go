package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jstittsworth/courtsim/internal/sim"
)

// MatchCache stores finished simulation results in redis. The rotation
// engine is deterministic, so a result is fully identified by the request
// that produced it.
type MatchCache struct {
	client     *redis.Client
	expiration time.Duration
}

func NewMatchCache(client *redis.Client, expiration time.Duration) *MatchCache {
	return &MatchCache{
		client:     client,
		expiration: expiration,
	}
}

// Key derives the cache key from the simulation parameters.
func (c *MatchCache) Key(home, away string, seed int64, pace string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", home, away, seed, pace)))
	return "sim:result:" + hex.EncodeToString(sum[:16])
}

func (c *MatchCache) Set(ctx context.Context, key string, result *sim.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Get returns the cached result, or (nil, nil) on a miss.
func (c *MatchCache) Get(ctx context.Context, key string) (*sim.Result, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	var result sim.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}

func (c *MatchCache) Delete(ctx context.Context, keys ...string) error {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}
