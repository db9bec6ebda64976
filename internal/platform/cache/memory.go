package cache

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	val     []byte
	expires time.Time // zero means no expiry
}

// Memory is a map backed Cache for tests and single-process dev runs
type Memory struct {
	mu sync.RWMutex
	m  map[string]memEntry

	// now is a seam for expiry tests
	now func() time.Time
}

// NewMemory returns an empty in-process cache
func NewMemory() *Memory {
	return &Memory{m: make(map[string]memEntry), now: time.Now}
}

// Get returns the value for key if present and unexpired
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.val, true, nil
}

// Set stores val under key for ttl
func (c *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	e := memEntry{val: val}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.m[key] = e
	c.mu.Unlock()
	return nil
}

// Delete removes key
func (c *Memory) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
	return nil
}

// Ping always succeeds
func (c *Memory) Ping(context.Context) error { return nil }

// Close is a no-op
func (c *Memory) Close() error { return nil }
