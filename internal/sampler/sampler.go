// Package sampler wraps platform-specific access to machine metrics.
// Samplers are read-only and side-effect free: sampling the same metric
// concurrently is always safe, which is what lets the dispatcher answer
// interleaved requests without locks.
package sampler

import (
	"context"
	"sync"
	"time"
)

// sampleTimeout bounds a single hardware read. A sampler must never block
// the dispatch loop indefinitely.
const sampleTimeout = 2 * time.Second

// Sampler produces a raw reading for one metric kind.
type Sampler interface {
	// Kind returns the metric kind this sampler serves (e.g. "CPU_TEMP").
	Kind() string

	// Sample returns the current reading, or a typed error when the
	// sensor is unavailable, access is denied, or the platform is
	// unsupported.
	Sample(ctx context.Context) (float64, error)
}

// Cached decorates a Sampler with a last-good-reading fallback. When the
// inner sampler fails and a previous reading exists, the previous reading
// is returned instead of the error; a sampler that has never succeeded
// still propagates the error so the dispatcher can omit the response and
// tiles keep their placeholder display.
type Cached struct {
	inner Sampler

	mu   sync.Mutex
	last float64
	ok   bool
}

// NewCached wraps a sampler with last-good fallback caching.
func NewCached(inner Sampler) *Cached {
	return &Cached{inner: inner}
}

// Kind returns the wrapped sampler's metric kind.
func (c *Cached) Kind() string {
	return c.inner.Kind()
}

// Sample reads through to the wrapped sampler, remembering the last
// successful reading.
func (c *Cached) Sample(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, sampleTimeout)
	defer cancel()

	value, err := c.inner.Sample(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if c.ok {
			return c.last, nil
		}
		return 0, err
	}

	c.last = value
	c.ok = true
	return value, nil
}
