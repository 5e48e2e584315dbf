package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisLeaser hands out short exclusive leases backed by redislock
type RedisLeaser struct {
	locker *redislock.Client
}

// NewRedisLeaser creates a leaser on an existing client
func NewRedisLeaser(client redis.UniversalClient) *RedisLeaser {
	return &RedisLeaser{locker: redislock.New(client)}
}

// TryLock obtains key for ttl without waiting. ok is false when another
// holder owns the lease.
func (l *RedisLeaser) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	lock, err := l.locker.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to obtain lease %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, true, nil
}
