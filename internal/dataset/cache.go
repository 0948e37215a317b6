// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// LoadFunc reads a dataset from path. Loader.Load and Load satisfy it.
type LoadFunc func(ctx context.Context, path string) (*Dataset, error)

// Cache memoizes datasets by source path so that repeated requests within a
// session share one read-only Dataset. Failed loads are not cached.
// A Cache is safe for concurrent use.
type Cache struct {
	load  LoadFunc
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*Dataset
	// gen advances on Invalidate and Reset; a load started under an older
	// generation is returned to its callers but not stored.
	gen uint64

	// misses counts GetOrLoad calls that found no entry.
	misses atomic.Int64
}

// NewCache returns an empty cache that fills itself with load. A nil load
// uses Load.
func NewCache(load LoadFunc) *Cache {
	if load == nil {
		load = Load
	}
	return &Cache{
		load:    load,
		entries: make(map[string]*Dataset),
	}
}

// GetOrLoad returns the cached dataset for path, loading it on first use.
// Concurrent callers for the same path wait on a single load. The load runs
// detached from any one caller's cancellation; a caller whose ctx ends stops
// waiting and gets ctx.Err() while the load continues for the others.
func (c *Cache) GetOrLoad(ctx context.Context, path string) (*Dataset, error) {
	key := cacheKey(path)
	if ds, ok := c.lookup(key); ok {
		return ds, nil
	}
	c.misses.Add(1)

	ch := c.group.DoChan(key, func() (any, error) {
		if ds, ok := c.lookup(key); ok {
			return ds, nil
		}
		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		ds, err := c.load(context.WithoutCancel(ctx), path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.entries[key] = ds
		}
		c.mu.Unlock()
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}

// Cached reports whether a dataset for path is held.
func (c *Cache) Cached(path string) bool {
	_, ok := c.lookup(cacheKey(path))
	return ok
}

// Invalidate drops the dataset for path; the next GetOrLoad reads the
// source again. A load already in flight still answers its waiting callers
// but its result is not kept.
func (c *Cache) Invalidate(path string) {
	key := cacheKey(path)
	c.mu.Lock()
	delete(c.entries, key)
	c.gen++
	c.mu.Unlock()
	c.group.Forget(key)
}

// Reset drops every cached dataset.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*Dataset)
	c.gen++
	c.mu.Unlock()
}

func (c *Cache) lookup(key string) (*Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.entries[key]
	return ds, ok
}

// cacheKey binds entries to the file identity by its cleaned absolute path.
func cacheKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
