package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores each key as a plain Redis string under a common prefix.
type Redis struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// RedisOptions configures a Redis store.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Timeout  time.Duration
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	r := NewRedisWithClient(client, opts.Prefix, opts.Timeout)

	pingCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return r, nil
}

// NewRedisWithClient wraps an existing client. A non-positive timeout means
// calls are bounded only by the caller's context.
func NewRedisWithClient(client redis.UniversalClient, prefix string, timeout time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, timeout: timeout}
}

func (r *Redis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Redis) redisKey(key string) string {
	return r.prefix + key
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	val, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

// Set implements Store.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.client.Set(ctx, r.redisKey(key), value, 0).Err()
}

// Close implements Store.
func (r *Redis) Close() error {
	return r.client.Close()
}
