package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds the in-process cache. Resolution results are
// small, so a few thousand entries cover even busy server deployments.
const DefaultMemoryEntries = 4096

// Memory is an in-process LRU cache. The HTTP server uses it when no
// shared backend is configured.
type Memory struct {
	lru *lru.Cache[string, memoryEntry]
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemory creates an in-process cache holding at most size entries.
func NewMemory(size int) (*Memory, error) {
	c, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create memory cache: %w", err)
	}
	return &Memory{lru: c}, nil
}

// Get retrieves a value. Expired entries are evicted and reported as misses.
func (c *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a value. A non-positive ttl stores it without expiration.
func (c *Memory) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.lru.Add(key, e)
	return nil
}

// Delete removes a value.
func (c *Memory) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Close drops all entries.
func (c *Memory) Close() error {
	c.lru.Purge()
	return nil
}

var _ Cache = (*Memory)(nil)
