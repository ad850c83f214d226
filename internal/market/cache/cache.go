// Package cache holds the last fetched quote per (category, code) key.
// The cache is deliberately dumb: it never expires entries on its own,
// because staleness depends on market-calendar semantics it should not
// know. Freshness judgment belongs entirely to the refresh policy.
package cache

import (
	"sync"
	"time"

	"github.com/bafang/portfolio-tracker/internal/model"
)

// Key identifies a cache entry.
type Key struct {
	Category model.ProductCategory
	Code     string
}

// Entry is the latest quote for a key plus the instant it was fetched.
type Entry struct {
	Quote     model.Quote
	FetchedAt time.Time
}

// Cache is a last-write-wins quote store safe for concurrent use. Readers
// always see a complete quote, never a partially written one. Construct
// instances with New and inject them; there is no package-level cache, so
// tests can run against isolated instances.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]Entry)}
}

// Read returns the entry for (category, code), if present.
func (c *Cache) Read(category model.ProductCategory, code string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[Key{Category: category, Code: code}]
	return entry, ok
}

// Write stores quote as the latest snapshot for (category, code),
// replacing any previous entry.
func (c *Cache) Write(category model.ProductCategory, code string, quote model.Quote, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[Key{Category: category, Code: code}] = Entry{Quote: quote, FetchedAt: fetchedAt}
}

// Invalidate removes the entry for (category, code) if present.
func (c *Cache) Invalidate(category model.ProductCategory, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, Key{Category: category, Code: code})
}

// InvalidateCategory removes every entry in a category.
func (c *Cache) InvalidateCategory(category model.ProductCategory) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.Category == category {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]Entry)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
