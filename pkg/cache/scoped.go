package cache

import (
	"context"
	"time"
)

// ScopedCache wraps a Cache and prefixes every key.
//
// Example usage:
//
//	// Two catalogs sharing one Redis database
//	public := cache.Scoped(redisCache, "kitshelf:public:")
//	staging := cache.Scoped(redisCache, "kitshelf:staging:")
type ScopedCache struct {
	inner  Cache
	prefix string
}

// Scoped returns a Cache that prepends prefix to every key before
// delegating to inner. An empty prefix returns inner unchanged.
func Scoped(inner Cache, prefix string) Cache {
	if prefix == "" {
		return inner
	}
	return &ScopedCache{inner: inner, prefix: prefix}
}

// Get retrieves a prefixed key from the inner cache.
func (s *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores a prefixed key in the inner cache.
func (s *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes a prefixed key from the inner cache.
func (s *ScopedCache) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the inner cache.
func (s *ScopedCache) Close() error {
	return s.inner.Close()
}

var _ Cache = (*ScopedCache)(nil)
