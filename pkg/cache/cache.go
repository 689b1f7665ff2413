// Package cache stores rendered artifacts between runs.
//
// The [Cache] interface is a byte store with per-entry expiry. [FileCache]
// keeps entries under the user's cache directory for the CLI, [NullCache]
// disables caching. Keys come from a [Keyer] so that every input that changes
// an artifact (script content, output format, render options) changes its key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// NullCache never stores anything. Every Get is a miss.
type NullCache struct{}

// NewNullCache creates a cache that disables caching.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
