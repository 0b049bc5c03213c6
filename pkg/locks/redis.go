package locks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agriquote/agriquote-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL           = 10 * time.Second
	defaultRetryInterval = 25 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// redisStore defines the operations used by Redis.
type redisStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(name string) string
}

// Redis implements Locker across processes using SETNX + TTL.
type Redis struct {
	client redisStore
	ttl    time.Duration
	retry  time.Duration
	logg   *logger.Logger
}

// NewRedis constructs a Redis-backed locker. Zero durations pick defaults.
func NewRedis(client redisStore, ttl, retry time.Duration, logg *logger.Logger) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client required for locks")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if retry <= 0 {
		retry = defaultRetryInterval
	}
	return &Redis{client: client, ttl: ttl, retry: retry, logg: logg}, nil
}

// Lock polls until the key is owned or ctx is done.
func (r *Redis) Lock(ctx context.Context, key string) (Unlock, error) {
	redisKey := r.client.LockKey(key)
	owner := uuid.NewString()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, redisKey, owner, r.ttl)
		if err != nil {
			return nil, fmt.Errorf("setnx %s: %w", redisKey, err)
		}
		if ok {
			var once sync.Once
			return func() { once.Do(func() { r.release(redisKey, owner) }) }, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// release frees the key only if the owner value still matches.
func (r *Redis) release(key, owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	value, err := r.client.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warn(ctx, key, fmt.Errorf("read lock owner: %w", err))
		}
		return
	}
	if value != owner {
		return
	}
	if err := r.client.Del(ctx, key); err != nil {
		r.warn(ctx, key, fmt.Errorf("delete lock: %w", err))
	}
}

func (r *Redis) warn(ctx context.Context, key string, err error) {
	if r.logg == nil {
		return
	}
	r.logg.WarnErr(r.logg.WithField(ctx, "lock_key", key), "lock.release_failed", err)
}
