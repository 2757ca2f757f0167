// Package cache holds the optional Redis-backed response cache for the home
// top-movies panel. All methods are nil-safe so the server runs identically
// with caching disabled.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const topMoviesKey = "catalog:top-movies"

// TopMovies caches the serialized top-movies payload with a TTL. The payload
// is built from the persisted average_rating column, so serving it from cache
// preserves the cached-average semantics; writes invalidate the key.
type TopMovies struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

// NewTopMovies wraps a Redis client; a nil client yields a no-op cache.
func NewTopMovies(client *redis.Client, ttl time.Duration, logger *log.Logger) *TopMovies {
	if logger == nil {
		logger = log.Default()
	}
	return &TopMovies{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached payload and whether it was present.
func (c *TopMovies) Get(ctx context.Context) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, topMoviesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Printf("cache: get top movies: %v", err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores the payload under the configured TTL. Failures are logged and
// swallowed; the cache never gates a response.
func (c *TopMovies) Set(ctx context.Context, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, topMoviesKey, payload, c.ttl).Err(); err != nil {
		c.logger.Printf("cache: set top movies: %v", err)
	}
}

// Invalidate drops the cached payload. Called after every rating write and
// movie create/delete so the panel reflects the committed averages.
func (c *TopMovies) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, topMoviesKey).Err(); err != nil {
		c.logger.Printf("cache: invalidate top movies: %v", err)
	}
}
