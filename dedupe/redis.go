// SPDX-License-Identifier: MIT

package dedupe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voxhook/voxhook/internal/log"
)

const redisKeyPrefix = "voxhook:replay:"

// Redis is the Redis-backed store. TTL enforcement is delegated to the
// server; keys are namespaced under redisKeyPrefix.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the Redis instance addressed by a redis:// URL or a
// plain host:port.
func NewRedis(dsn string) (*Redis, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		opts = &redis.Options{
			Addr:         dsn,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("dedupe: redis connection failed: %w", err)
	}

	logger := log.WithComponent("dedupe")
	logger.Info().
		Str("backend", "redis").
		Str("addr", opts.Addr).
		Msg("replay store connected")
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *Redis) Put(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return r.client.Set(ctx, redisKeyPrefix+key, body, ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
