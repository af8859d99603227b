// Package redisstore keeps rate-limit counters in Redis so that every
// instance behind a load balancer shares one budget per client.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis. redisURL may be a redis:// URL or a bare host:port.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// WindowLimiter is a fixed-window request counter.
// At most limit requests per key are allowed in each window.
type WindowLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewWindowLimiter allows burst requests per key in each window, where the
// window is the time the token bucket takes to refill burst tokens at rps.
// Sustained throughput then matches rps.
func NewWindowLimiter(client *redis.Client, prefix string, rps float64, burst int) *WindowLimiter {
	limit := int64(burst)
	if limit < 1 {
		limit = 1
	}
	window := time.Second
	if rps > 0 {
		window = time.Duration(float64(limit) * float64(time.Second) / rps)
	}
	if window < time.Millisecond {
		window = time.Millisecond
	}
	return &WindowLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow counts one request for key and reports whether it fits in the current window
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s:%d", l.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.PExpire(ctx, redisKey, 2*l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	return incr.Val() <= l.limit, nil
}
