package models

import (
	"context"
	"sync"
	"time"
)

// CatalogLoader fetches a fresh catalog.
type CatalogLoader func(ctx context.Context) (*Catalog, error)

// Cache holds the last loaded catalog until its TTL expires. A failed refresh
// keeps serving the previous catalog if there is one.
type Cache struct {
	load CatalogLoader
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	catalog   *Catalog
	fetchedAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache returns a cache around load. A ttl <= 0 means entries never expire.
func NewCache(load CatalogLoader, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{load: load, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileLoader returns a loader reading path (or the embedded catalog when empty).
func FileLoader(path string) CatalogLoader {
	return func(ctx context.Context) (*Catalog, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return LoadCatalog(path)
	}
}

// Get returns the cached catalog, reloading it when missing or expired.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog != nil && !c.expired() {
		return c.catalog, nil
	}
	return c.reload(ctx)
}

// Refresh reloads the catalog regardless of its age. On failure it returns
// the previous catalog, if any, with the error.
func (c *Cache) Refresh(ctx context.Context) (*Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reload(ctx)
}

// reload must be called with mu held.
func (c *Cache) reload(ctx context.Context) (*Catalog, error) {
	fresh, err := c.load(ctx)
	if err != nil {
		if c.catalog != nil {
			return c.catalog, err
		}
		return nil, err
	}
	c.catalog = fresh
	c.fetchedAt = c.now()
	return fresh, nil
}

// FetchedAt reports when the cached catalog was loaded; zero if none.
func (c *Cache) FetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}

func (c *Cache) expired() bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(c.fetchedAt) >= c.ttl
}
