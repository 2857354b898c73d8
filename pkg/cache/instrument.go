package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/deptower/pkg/observability"
)

// Instrumented wraps a Cache and reports hits, misses, and writes through
// the [observability] hook registry.
type Instrumented struct {
	inner Cache
}

// Instrument wraps c with observability reporting.
func Instrument(c Cache) *Instrumented {
	return &Instrumented{inner: c}
}

// Get forwards to the wrapped cache and records the hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, ok, err
}

// Set forwards to the wrapped cache and records the write.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

// Delete forwards to the wrapped cache.
func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close forwards to the wrapped cache.
func (c *Instrumented) Close() error {
	return c.inner.Close()
}

// keyType extracts the namespace prefix from a key like "resolution:abc".
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

var _ Cache = (*Instrumented)(nil)
