// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte store with TTLs. Implementations:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that every entry point (CLI, server,
// batch runs) derives the same key from the same inputs.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// An expired entry is reported as a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default TTLs per entry type.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// keyType returns the key's prefix ("layout", "artifact") for hooks.
func keyType(key string) string {
	parts := strings.Split(key, ":")
	for _, p := range parts {
		if p == "layout" || p == "artifact" {
			return p
		}
	}
	return parts[0]
}
