// Package cache stores layout artifacts so that repeated runs on an
// unchanged graph with unchanged options skip the layout.
//
// Keys are derived from the content hash of the input graph and the options
// that influence the output, see [Keyer]. Two backends exist: [FileCache]
// for the CLI and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a cached artifact stays valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes the entry for key. Missing entries are ignored.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
