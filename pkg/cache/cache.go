// Package cache provides caching of upstream API responses.
//
// Backends:
//   - FileCache: file-based, for CLI and cron usage (default)
//   - RedisCache: shared cache for hosted deployments
//   - NullCache: disables caching
//
// Values are opaque byte slices; callers handle serialization. Keys should
// be namespaced by source (e.g., "github:search:...") to avoid collisions.
package cache

import (
	"context"
	"time"
)

// Cache stores raw response bytes under string keys with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
