// Package cache stores run snapshots and rendered artifacts.
//
// # Overview
//
// A run is fully determined by the bytes of its scene and script, so its
// result can be reused across invocations. The [Cache] interface is small
// enough to be served by a directory of files, Redis or MongoDB:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: local directory, the CLI default
//   - [RedisCache]: shared cache for several machines
//   - [MongoCache]: shared cache with server-side expiry
//
// [Open] selects a backend from a URL.
//
// # Keys
//
// A [Keyer] derives keys from content hashes. [NewScopedKeyer] prefixes
// every key, which keeps unrelated projects apart in a shared backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases connections held by the cache.
	Close() error
}

// Time-to-live for each kind of entry.
const (
	TTLRun      = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Key type labels reported to observability hooks.
const (
	KeyTypeRun      = "run"
	KeyTypeArtifact = "artifact"
)
