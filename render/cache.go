// ABOUTME: In-memory page cache that wraps a page rendering function with sha256-keyed entries.
// ABOUTME: A zero revalidate interval keeps entries until cleared, matching fully static pages.
package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// Page is a fully rendered response body.
type Page struct {
	Status      int
	ContentType string
	Body        []byte
}

// RenderFunc renders the page for a route key.
type RenderFunc func(ctx context.Context, key string) (Page, error)

// cacheEntry holds a single cached page with its creation timestamp.
type cacheEntry struct {
	page      Page
	createdAt time.Time
}

// PageCache wraps a rendering function with an in-memory cache. Entries are
// re-rendered once older than the revalidate interval; zero means never.
type PageCache struct {
	renderFn   RenderFunc
	revalidate time.Duration
	now        func() time.Time
	entries    map[string]*cacheEntry
	mu         sync.RWMutex
}

// NewPageCache creates a PageCache wrapping renderFn.
func NewPageCache(renderFn RenderFunc, revalidate time.Duration) *PageCache {
	return &PageCache{
		renderFn:   renderFn,
		revalidate: revalidate,
		now:        time.Now,
		entries:    make(map[string]*cacheEntry),
	}
}

// Get returns the cached page for key, rendering it on a miss or after
// expiry. Errors are never cached.
func (c *PageCache) Get(ctx context.Context, key string) (Page, error) {
	k := cacheKey(key)

	c.mu.RLock()
	if entry, ok := c.entries[k]; ok && c.fresh(entry) {
		page := entry.page
		c.mu.RUnlock()
		return page, nil
	}
	c.mu.RUnlock()

	page, err := c.renderFn(ctx, key)
	if err != nil {
		return Page{}, err
	}

	c.mu.Lock()
	c.entries[k] = &cacheEntry{page: page, createdAt: c.now()}
	c.mu.Unlock()

	return page, nil
}

// Warm renders and stores every key, stopping at the first failure.
func (c *PageCache) Warm(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if _, err := c.Get(ctx, key); err != nil {
			return fmt.Errorf("warming %s: %w", key, err)
		}
	}
	return nil
}

// Len returns the number of entries currently in the cache (including expired ones).
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *PageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *PageCache) fresh(entry *cacheEntry) bool {
	if c.revalidate <= 0 {
		return true
	}
	return c.now().Sub(entry.createdAt) < c.revalidate
}

func cacheKey(key string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
