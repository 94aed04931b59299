// Package cache stores rendered artifacts between runs.
//
// A [Cache] is a byte store with per-entry expiry. Three implementations
// are provided:
//
//   - [NullCache]: stores nothing, for --no-cache and tests
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for servers and CI
//
// Keys are produced by a [Keyer] from content hashes, so a changed
// document, data file or output format never reads a stale entry.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLFigure   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the cache's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
