package cache

import (
	"context"
	"io"
	"log"
	"testing"
	"time"
)

// The cache must behave as a transparent no-op when Redis is not configured.
func TestTopMoviesDisabled(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)

	caches := []*TopMovies{
		nil,
		NewTopMovies(nil, time.Minute, logger),
	}
	for _, c := range caches {
		if payload, ok := c.Get(ctx); ok || payload != nil {
			t.Fatalf("disabled cache should always miss")
		}
		c.Set(ctx, []byte(`{"items":[]}`))
		c.Invalidate(ctx)
		if _, ok := c.Get(ctx); ok {
			t.Fatalf("disabled cache should not retain payloads")
		}
	}
}
