// Package cache stores generated learning paths keyed by the digest of their
// input.
//
// The engine is deterministic, so a digest of the input document and the
// grouping options identifies its result exactly. Hosting code (the CLI and
// the HTTP server) looks results up here before running the engine again.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// All backends implement [Cache]. Network backends wrap transient failures
// with [Retryable] and retry them with [RetryWithBackoff].
//
// # Keys
//
// A [Keyer] turns digests into backend keys. [ScopedKeyer] adds a prefix so
// several tenants can share one backend.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	// TTLPath is how long a generated learning path stays cached.
	TTLPath = 7 * 24 * time.Hour

	// TTLCycles is how long a cycle report stays cached.
	TTLCycles = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get returns hit=false and a nil error for a missing or expired key. A
// non-nil error means the backend failed; callers treat it as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer derives cache keys from input digests.
type Keyer interface {
	// PathKey is the key of a full generation result.
	PathKey(digest string) string
	// CyclesKey is the key of a cycle report.
	CyclesKey(digest string) string
}

// DefaultKeyer produces keys of the form "<kind>:<digest>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PathKey implements [Keyer].
func (DefaultKeyer) PathKey(digest string) string { return "path:" + digest }

// CyclesKey implements [Keyer].
func (DefaultKeyer) CyclesKey(digest string) string { return "cycles:" + digest }

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
