// Package cache provides a Redis-backed result cache for table pages,
// keyed on the canonical query string of a request. A nil Redis client
// degrades to a no-op so caching stays optional.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tablekit/tablekit/params"
)

// ErrMiss is returned when the key is not in the cache.
var ErrMiss = errors.New("cache miss")

// Cache caches values of type T under a common key prefix.
type Cache[T any] struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a cache. A nil client disables it; every operation becomes
// a no-op miss.
func New[T any](rc *redis.Client, prefix string, ttl time.Duration) *Cache[T] {
	return &Cache[T]{rc: rc, prefix: prefix, ttl: ttl}
}

// PageKey is the cache key for one rendered table page: the table name
// plus the canonical encoding of its state, so equivalent URLs share an
// entry.
func PageKey(tableName string, state params.TableState) string {
	return fmt.Sprintf("%s?%s", tableName, state.Encode())
}

func (c *Cache[T]) key(k string) string {
	return c.prefix + ":" + k
}

// Get retrieves a cached value. ErrMiss covers both absence and a
// disabled cache.
func (c *Cache[T]) Get(ctx context.Context, k string) (*T, error) {
	if c == nil || c.rc == nil {
		return nil, ErrMiss
	}

	raw, err := c.rc.Get(ctx, c.key(k)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var row T
	if err := json.Unmarshal([]byte(raw), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &row, nil
}

// Set saves a value into the cache.
func (c *Cache[T]) Set(ctx context.Context, k string, data *T) error {
	if c == nil || c.rc == nil {
		return nil
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := c.rc.Set(ctx, c.key(k), bytes, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Delete removes a value from the cache.
func (c *Cache[T]) Delete(ctx context.Context, k string) error {
	if c == nil || c.rc == nil {
		return nil
	}
	if err := c.rc.Del(ctx, c.key(k)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}
