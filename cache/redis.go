package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultKeyPrefix namespaces every Redis key written by hanscan.
const DefaultKeyPrefix = "hanscan:"

// DefaultLocalSize is the number of keys kept in the local LRU layer.
const DefaultLocalSize = 4096

// RedisCache is a Redis-backed key cache for teams sharing keys across
// machines. Reads go through a bounded local LRU first.
type RedisCache struct {
	client    *redis.Client
	local     *lru.Cache[string, string]
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       int    // TTL in seconds (0 = no expiration)
	KeyPrefix string // Prefix for all keys (default: "hanscan:")
	LocalSize int    // LRU capacity (default: DefaultLocalSize)
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	c := NewRedisCacheFromClient(client, cfg.TTL, cfg.KeyPrefix)
	if cfg.LocalSize > 0 {
		c.local, _ = lru.New[string, string](cfg.LocalSize)
	}
	return c, nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttlSeconds int, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}

	local, _ := lru.New[string, string](DefaultLocalSize)

	return &RedisCache{
		client:    client,
		local:     local,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value, consulting the local layer first.
func (c *RedisCache) Get(key string) (string, bool) {
	if v, ok := c.local.Get(key); ok {
		return v, true
	}

	val, err := c.client.Get(context.Background(), c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Redis get failed, treating as miss")
		return "", false
	}

	c.local.Add(key, val)
	return val, true
}

// Set stores a value in Redis and in the local layer.
func (c *RedisCache) Set(key string, value string) error {
	if err := c.client.Set(context.Background(), c.keyPrefix+key, value, c.ttl).Err(); err != nil {
		return err
	}
	c.local.Add(key, value)
	return nil
}

// Entries returns every entry under the key prefix.
func (c *RedisCache) Entries(ctx context.Context) (map[string]string, error) {
	result := make(map[string]string)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}

		if len(keys) > 0 {
			vals, err := c.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, err
			}
			for i, v := range vals {
				s, ok := v.(string)
				if !ok {
					continue
				}
				result[strings.TrimPrefix(keys[i], c.keyPrefix)] = s
			}
		}

		if next == 0 {
			return result, nil
		}
		cursor = next
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping() error {
	return c.client.Ping(context.Background()).Err()
}

var _ KeyCache = (*RedisCache)(nil)
