package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service is the key/value contract shared by the memory, redis and layered caches.
// Values are stored as JSON so every backend round-trips the same bytes.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

// Key joins parts with ':' into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// GetOrLoad returns the cached value at key, or calls load and stores its result.
// hit reports whether the value came from the cache. A failing cache never fails
// the call; only load errors are returned.
func GetOrLoad[T any](ctx context.Context, c Service, key string, ttl time.Duration, load func() (T, error)) (v T, hit bool, err error) {
	if c != nil {
		if gerr := c.Get(ctx, key, &v); gerr == nil {
			return v, true, nil
		}
	}

	v, err = load()
	if err != nil {
		return v, false, err
	}
	if c != nil {
		_ = c.Set(ctx, key, v, ttl)
	}
	return v, false, nil
}
