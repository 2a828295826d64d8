package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Client on a shared Redis instance.
type RedisCache struct {
	client *redis.Client
	config *Config
	logger Logger
}

func NewRedisCache(config *Config, logger Logger) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		PoolTimeout:  config.PoolTimeout,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	c := &RedisCache{client: rdb, config: config, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return c, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, &Error{Operation: "get", Key: key, Err: err}
	}
	return result, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = r.config.DefaultTTL
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return &Error{Operation: "set", Key: key, Err: err}
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return &Error{Operation: "delete", Key: key, Err: err}
	}
	return nil
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, &Error{Operation: "exists", Key: key, Err: err}
	}
	return result > 0, nil
}

func (r *RedisCache) Increment(ctx context.Context, key string, delta int64, ttl time.Duration) (int64, error) {
	pipe := r.client.Pipeline()
	incrCmd := pipe.IncrBy(ctx, key, delta)

	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	} else if ttl == 0 && r.config.DefaultTTL > 0 {
		pipe.Expire(ctx, key, r.config.DefaultTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, &Error{Operation: "increment", Key: key, Err: err}
	}
	return incrCmd.Val(), nil
}

func (r *RedisCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	result, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, &Error{Operation: "ttl", Key: key, Err: err}
	}
	return result, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return &Error{Operation: "ping", Err: err}
	}
	return nil
}
