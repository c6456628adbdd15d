package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/binhbb2204/movie-stats-viz/pkg/errors"
	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores JSON-encoded values under namespaced keys.
type RedisCache struct {
	client *redis.Client
	prefix string
	log    *logger.Logger
}

func NewRedisCache(ctx context.Context, cfg Config, prefix string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	log := logger.GetLogger().WithContext("component", "cache")
	log.Info("redis_connected", "addr", cfg.Addr, "db", cfg.DB)

	return &RedisCache{client: client, prefix: prefix, log: log}, nil
}

// NewRedisCacheFromClient wraps an existing client without pinging it.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		log:    logger.GetLogger().WithContext("component", "cache"),
	}
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// Get decodes the value at key into dest. A missing key is reported as
// (false, nil).
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	value, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		c.log.Error("cache_get_failed", "key", key, "error", err.Error())
		return false, errors.NewCacheError("get failed", "get", key, err)
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		c.log.Error("cache_unmarshal_failed", "key", key, "error", err.Error())
		return false, errors.NewCacheError("unmarshal failed", "get", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		c.log.Error("cache_set_failed", "key", key, "error", err.Error())
		return errors.NewCacheError("set failed", "set", key, err)
	}
	return nil
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.log.Error("cache_delete_failed", "count", len(keys), "error", err.Error())
		return errors.NewCacheError("delete failed", "del", c.key(keys[0]), err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
