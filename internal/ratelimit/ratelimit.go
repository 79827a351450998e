// Package ratelimit provides a Redis-backed fixed-window rate limiter for
// the public form endpoints. When Redis is not configured the limiter is
// nil and callers skip it; the forms still work, just unthrottled.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forgepoint/site-server/internal/pkg/logger"
)

// Limiter counts requests per key within a fixed window.
type Limiter struct {
	client *redis.Client
	window time.Duration
	max    int
	prefix string
}

// New creates a limiter on an existing Redis client.
func New(client *redis.Client, window time.Duration, max int) *Limiter {
	return &Limiter{
		client: client,
		window: window,
		max:    max,
		prefix: "fp:ratelimit:",
	}
}

// Connect dials Redis from a URL and returns a limiter, or an error if
// Redis is unreachable. Callers treat a nil limiter as "no limiting".
func Connect(ctx context.Context, redisURL string, window time.Duration, max int) (*Limiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		// Bare host:port is accepted too, matching common REDIS_ADDR usage
		opts = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return New(client, window, max), nil
}

// Allow increments the counter for key and reports whether the request is
// within the window's budget. Redis failures fail open: a broken limiter
// must not take the contact form down with it.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil {
		return true
	}

	redisKey := l.prefix + key
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		logger.Warn("rate limiter unavailable, failing open", "err", err)
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			logger.Warn("rate limiter expire failed", "err", err)
		}
	}
	return count <= int64(l.max)
}

// RetryAfter returns the window length in whole seconds for the
// Retry-After response header.
func (l *Limiter) RetryAfter() int {
	if l == nil {
		return 0
	}
	return int(l.window / time.Second)
}

// Close releases the underlying Redis connection.
func (l *Limiter) Close() error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Close()
}
