// Package cache provides a small byte-oriented cache used to memoize the
// external bounding-box query.
//
// Invoking Inkscape is by far the slowest step of a conversion run, and its
// answer only depends on the document bytes and the queried element IDs.
// Results are therefore cached across runs, keyed by a content hash (see
// BoxKey), under the user's XDG cache directory.
//
// Two implementations are provided:
//   - FileCache: entries stored as files with TTL metadata
//   - NullCache: no-op, used for --no-cache and in tests
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
