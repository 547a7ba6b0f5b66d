package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptCounter counts wrong verification code submissions per email in a
// fixed window that starts with the first failure.
type AttemptCounter struct {
	rdb    *redis.Client
	window time.Duration
}

func NewAttemptCounter(rdb *redis.Client, window time.Duration) *AttemptCounter {
	return &AttemptCounter{rdb: rdb, window: window}
}

func attemptKey(email string) string { return fmt.Sprintf("code_attempts:%s", email) }

func (c *AttemptCounter) Failures(ctx context.Context, email string) (int64, error) {
	n, err := c.rdb.Get(ctx, attemptKey(email)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// Fail records a wrong submission and returns the count in the window.
func (c *AttemptCounter) Fail(ctx context.Context, email string) (int64, error) {
	key := attemptKey(email)
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, c.window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *AttemptCounter) Reset(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, attemptKey(email)).Err()
}
