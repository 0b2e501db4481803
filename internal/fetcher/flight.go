package fetcher

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Group collapses concurrent fetches of the same flight key into one call.
type Group struct {
	g      singleflight.Group
	shared atomic.Int64
}

// Do runs fn once per in-flight key. shared reports whether the result was
// handed to more than one caller.
func (g *Group) Do(key string, fn func() (any, error)) (v any, err error, shared bool) {
	v, err, shared = g.g.Do(key, fn)
	if shared {
		g.shared.Add(1)
	}
	return v, err, shared
}

// Shared counts callers that received a result produced for another caller
// or handed theirs on.
func (g *Group) Shared() int64 {
	return g.shared.Load()
}

// Cache holds successful fetch results for the lifetime of one lint run.
// Failures are never stored, so a later caller retries.
type Cache struct {
	data   sync.Map
	hits   atomic.Int64
	misses atomic.Int64
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.data.Load(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

func (c *Cache) Set(key string, value any) {
	c.data.Store(key, value)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	n := 0
	c.data.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

func (c *Cache) Hits() int64   { return c.hits.Load() }
func (c *Cache) Misses() int64 { return c.misses.Load() }
