package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RateLimiter — счётчик запросов в фиксированном окне, общий для всех реплик.
type RateLimiter struct {
	c   *redis.Client
	now func() time.Time
}

func NewRateLimiter(addr string) *RateLimiter {
	return NewRateLimiterWithClient(redis.NewClient(&redis.Options{Addr: addr}))
}

func NewRateLimiterWithClient(c *redis.Client) *RateLimiter {
	return &RateLimiter{c: c, now: time.Now}
}

// Allow делает INCR по ключу и обновляет TTL окна.
// Возвращает (allowed, currentCount).
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	pipe := rl.c.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, errors.Wrap(err, "redis ratelimit")
	}
	n := incr.Val()
	return n <= limit, n, nil
}

// WaitMinute блокируется, пока в текущей минуте для name не освободится слот.
// Ключ окна — name + минута, как у поминутных лимитов провайдеров.
func (rl *RateLimiter) WaitMinute(ctx context.Context, name string, perMinute int64) error {
	for {
		now := rl.now().UTC()
		key := fmt.Sprintf("rl:%s:%s", name, now.Format("200601021504"))
		allowed, _, err := rl.Allow(ctx, key, perMinute, 70*time.Second)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}

		next := now.Truncate(time.Minute).Add(time.Minute)
		t := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}
