// Package cache provides a small byte-oriented cache seam with TTL support
package cache

import (
	"context"
	"time"
)

// Cache is the read-through seam services use
// implementations must be safe for concurrent use
type Cache interface {
	// Get returns the cached value and whether the key was present and fresh
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores val under key for ttl, ttl <= 0 means no expiry
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error

	// Delete removes key, missing keys are not an error
	Delete(ctx context.Context, key string) error

	// Close releases backend resources
	Close() error
}

// Config selects and configures the cache backend
type Config struct {
	// Path is the badger data directory, ignored when InMemory is set
	Path string

	// InMemory opens an ephemeral badger instance, used in tests and dev
	InMemory bool
}

// Pinger mirrors the store readiness seam for backends that can report health
type Pinger interface{ Ping(context.Context) error }
