// Package cache provides byte-oriented storage backends for persistent slots.
//
// The stats pipeline keeps its whole cache in a single named slot; this
// package only knows how to put bytes under a key and get them back. Four
// backends implement [Cache]:
//
//   - [FileCache]: JSON-wrapped files under ~/.cache/kitshelf (CLI default)
//   - [RedisCache]: one Redis string per key, for shared deployments
//   - [MongoCache]: one document per key
//   - [NullCache]: stores nothing (--no-cache)
//
// [Scoped] prefixes every key, which keeps several kitshelf instances apart
// when they share a Redis or Mongo database.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as (nil, false, nil); err is reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
