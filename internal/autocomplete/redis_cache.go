package autocomplete

import (
	"context"
	"encoding/json"
	"errors"
	"horoscopus-web/internal/types"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "horoscopus:"

// RedisCache shares autocomplete results between server instances
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultStaleTime
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "autocomplete-redis-cache"),
	}
}

// NewRedisClient parses a redis:// URL and verifies the server is reachable
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key Key) ([]types.LocationSuggestion, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", "key", key.String(), "error", err)
		}
		return nil, false
	}

	var suggestions []types.LocationSuggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		c.logger.Warn("cache entry is corrupt", "key", key.String(), "error", err)
		return nil, false
	}
	return suggestions, true
}

func (c *RedisCache) Set(ctx context.Context, key Key, suggestions []types.LocationSuggestion) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", "key", key.String(), "error", err)
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key.String(), "error", err)
	}
}
