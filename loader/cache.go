package loader

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"macro-dashboard/models"
)

// Source loads a dataset; *Loader satisfies it.
type Source interface {
	Load(ctx context.Context, source string) (*models.Dataset, error)
}

// Cache memoises one dataset load for the process lifetime. Concurrent
// callers share a single in-flight load, and the outcome (including a
// failure) is kept: there are no retries.
type Cache struct {
	src    Source
	source string
	group  singleflight.Group

	mu   sync.RWMutex
	done bool
	ds   *models.Dataset
	err  error
}

// NewCache wraps src for the given dataset location.
func NewCache(src Source, source string) *Cache {
	return &Cache{src: src, source: source}
}

// Get returns the cached dataset, loading it on first use.
func (c *Cache) Get(ctx context.Context) (*models.Dataset, error) {
	if done, ds, err := c.cached(); done {
		return ds, err
	}

	v, err, _ := c.group.Do(c.source, func() (interface{}, error) {
		if done, ds, err := c.cached(); done {
			return ds, err
		}
		// A cancelled request must not poison the session-wide result.
		ds, err := c.src.Load(context.WithoutCancel(ctx), c.source)

		c.mu.Lock()
		c.ds, c.err, c.done = ds, err, true
		c.mu.Unlock()
		return ds, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Dataset), nil
}

// Loaded reports whether a load has completed.
func (c *Cache) Loaded() bool {
	done, _, _ := c.cached()
	return done
}

func (c *Cache) cached() (bool, *models.Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.done, c.ds, c.err
}
