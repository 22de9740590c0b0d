package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisKV keeps every key as a field of one Redis hash.
type RedisKV struct {
	client *redis.Client
	hash   string
	logger *zap.Logger
}

// NewRedisKV accepts either a redis:// URL or a plain host[:port].
func NewRedisKV(addr, hash string, logger *zap.Logger) *RedisKV {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}
	return &RedisKV{
		client: redis.NewClient(opts),
		hash:   hash,
		logger: logger,
	}
}

// Initialize pings Redis with exponential backoff until it answers,
// attempts run out, or ctx is done.
func (r *RedisKV) Initialize(ctx context.Context, attempts int) error {
	for i := 0; i < attempts; i++ {
		err := r.Ping(ctx)
		if err == nil {
			r.logger.Info("redis ready", zap.Int("attempt", i+1))
			return nil
		}
		r.logger.Warn("redis ping failed", zap.Int("attempt", i+1), zap.Error(err))

		backoff := time.Duration(250*(1<<uint(i))) * time.Millisecond
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed to connect to redis after %d attempts", attempts)
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.HGet(ctx, r.hash, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.HSet(ctx, r.hash, key, value).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.HDel(ctx, r.hash, key).Err()
}

func (r *RedisKV) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Ping(pingCtx).Err()
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
