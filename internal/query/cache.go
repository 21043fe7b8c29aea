// Package query holds the client-side cache of remote resources. Entries are
// keyed by (resource type, parent id, filter) strings built by the Key*
// helpers; mutations never write into the cache, they only invalidate key
// prefixes, and the next read refetches.
package query

import (
	"strings"
	"sync"
	"time"
)

// DefaultStaleAfter is how long a cached entry is served before a read goes
// back to the network.
const DefaultStaleAfter = 30 * time.Second

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is a content-addressed store of fetched resources. Reads and writes
// come from concurrent tea commands, so access is mutex-guarded even though
// the UI itself is single-threaded.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	staleAfter time.Duration
	now        func() time.Time
}

// New returns an empty cache using DefaultStaleAfter.
func New() *Cache {
	return NewWithStaleAfter(DefaultStaleAfter)
}

// NewWithStaleAfter returns an empty cache with a custom staleness window.
// A non-positive window means entries never go stale on their own.
func NewWithStaleAfter(staleAfter time.Duration) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Get returns the cached value for key if present and fresh.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.staleAfter > 0 && c.now().Sub(e.fetchedAt) > c.staleAfter {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. Whatever response arrives last wins; there is
// no ordering between concurrent fetches of the same key.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate removes every entry whose key starts with prefix and returns how
// many were dropped. Invalidating "retros/r1/cards" also drops any filtered
// variants keyed under it.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops everything. Called on logout so no resource outlives the
// session that fetched it.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
