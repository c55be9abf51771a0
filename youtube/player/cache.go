package player

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize bounds how many player versions are kept. Upstream
// rotates versions every few days, so a handful is plenty.
const DefaultCacheSize = 32

// Cache holds analyzed programs keyed by player version. Concurrent
// requests for the same uncached version are deduplicated: one analysis
// runs, the other callers await its result. A version's code is immutable,
// so entries carry no TTL and leave only by LRU pressure or explicit
// eviction.
type Cache struct {
	programs *lru.Cache[string, *Program]
	group    singleflight.Group
}

// NewCache creates a program cache. Sizes below 1 fall back to
// DefaultCacheSize.
func NewCache(size int) *Cache {
	if size < 1 {
		size = DefaultCacheSize
	}
	programs, _ := lru.New[string, *Program](size)
	return &Cache{programs: programs}
}

// Program returns the analyzed program for a player version, fetching and
// analyzing the script on a cache miss. The source callback is invoked at
// most once per version across concurrent callers.
//
// Cancelling ctx abandons the wait; the in-flight analysis still completes
// and populates the cache for later callers.
func (c *Cache) Program(ctx context.Context, version string, source func(ctx context.Context) (string, error)) (*Program, error) {
	if p, ok := c.programs.Get(version); ok {
		return p, nil
	}

	// The flight is shared by every caller waiting on this version, so it
	// must not die with whichever caller happened to start it.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(version, func() (interface{}, error) {
		if p, ok := c.programs.Get(version); ok {
			return p, nil
		}
		text, err := source(flightCtx)
		if err != nil {
			return nil, err
		}
		p, err := Analyze(text, version)
		if err != nil {
			return nil, err
		}
		c.programs.Add(version, p)
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Program), nil
	}
}

// Evict drops a version from the cache. The next request re-analyzes.
func (c *Cache) Evict(version string) {
	c.group.Forget(version)
	c.programs.Remove(version)
}

// Len reports how many versions are cached.
func (c *Cache) Len() int {
	return c.programs.Len()
}
