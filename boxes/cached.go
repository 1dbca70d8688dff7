package boxes

import (
	"context"
	"sync/atomic"

	"github.com/drake/glyphbox/cache"
)

// Cached memoizes successful renders of another Renderer. Failed renders
// are never cached.
type Cached struct {
	next    Renderer
	version string
	results *cache.LRU[string, Response]

	hits, misses, failures atomic.Int64
}

// CacheStats is a snapshot of a Cached renderer's counters.
type CacheStats struct {
	Len      int
	Hits     int64
	Misses   int64
	Failures int64
}

// Compile-time check that Cached implements Renderer
var _ Renderer = (*Cached)(nil)

// NewCached wraps next with an LRU of the given capacity. version is mixed
// into every key so a changed boxes-config invalidates old entries.
func NewCached(next Renderer, capacity int, version string) *Cached {
	if version == "" {
		version = "v1"
	}
	return &Cached{
		next:    next,
		version: version,
		results: cache.New[string, Response](capacity),
	}
}

// Render implements Renderer.
func (c *Cached) Render(ctx context.Context, req Request) (Response, error) {
	key := "boxes|" + c.version + "|" + req.Key()
	if resp, ok := c.results.Get(key); ok {
		c.hits.Add(1)
		return resp, nil
	}
	c.misses.Add(1)
	resp, err := c.next.Render(ctx, req)
	if err != nil {
		c.failures.Add(1)
		return Response{}, err
	}
	if resp.Measured == nil {
		measured := Measure(resp.BoxText)
		resp.Measured = &measured
	}
	if ctx.Err() == nil {
		c.results.Set(key, resp)
	}
	return resp, nil
}

// Len returns the number of cached renders.
func (c *Cached) Len() int {
	return c.results.Len()
}

// Stats returns the current counters.
func (c *Cached) Stats() CacheStats {
	return CacheStats{
		Len:      c.results.Len(),
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Failures: c.failures.Load(),
	}
}
