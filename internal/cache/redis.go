package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/redis/go-redis/v9"

	"headway/internal/domain"
)

// RedisCache stores routing engine responses so repeated searches skip the
// upstream call. Values are gzipped JSON.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedisCache(addr, password string, db int, logger *slog.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{
		client: client,
		prefix: "headway:",
		logger: logger.With("component", "redis_cache"),
	}, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// SetTrips caches the trips returned for one route request.
func (c *RedisCache) SetTrips(ctx context.Context, key string, trips []domain.Trip, ttl time.Duration) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	compressed, err := gzipCompress(data)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	start := time.Now()
	if err := c.client.Set(ctx, c.key(key), compressed, ttl).Err(); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
		return err
	}
	c.logger.Debug("cache set",
		"key", key,
		"trips", len(trips),
		"original_size", len(data),
		"compressed_size", len(compressed),
		"ttl", ttl,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetTrips returns the cached trips for key. ok is false on a miss.
func (c *RedisCache) GetTrips(ctx context.Context, key string) (trips []domain.Trip, ok bool, err error) {
	start := time.Now()
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "key", key)
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("cache get failed", "key", key, "error", err)
		return nil, false, err
	}

	data, err := gzipDecompress(val)
	if err != nil {
		c.evict(ctx, key)
		return nil, false, fmt.Errorf("decompress: %w", err)
	}
	if err := json.Unmarshal(data, &trips); err != nil {
		c.evict(ctx, key)
		return nil, false, fmt.Errorf("json unmarshal: %w", err)
	}

	c.logger.Debug("cache hit", "key", key, "size_bytes", len(val), "duration_ms", time.Since(start).Milliseconds())
	return trips, true, nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// evict drops an entry that can no longer be decoded so the next lookup
// misses and refills it.
func (c *RedisCache) evict(ctx context.Context, key string) {
	if err := c.Delete(ctx, key); err != nil {
		c.logger.Warn("cache evict failed", "key", key, "error", err)
	}
}

// DeletePattern removes every key matching pattern and returns how many went.
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) (int, error) {
	deleted := 0
	iter := c.client.Scan(ctx, 0, c.key(pattern), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, iter.Err()
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return io.ReadAll(gz)
}
