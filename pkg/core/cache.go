package core

import (
	"sync"
	"sync/atomic"
)

// CacheEntry holds one record's findings plus the modification marker they
// were computed against.
type CacheEntry struct {
	Modified int64  `json:"modified"`
	Findings Report `json:"findings,omitempty"`
}

// Cache memoizes per-record findings keyed by record ID. An entry may be
// served without recomputation iff its stored marker equals the record's
// current marker.
//
// The mutex keeps the map safe under concurrent checks. A lost update between
// two concurrent checks of the same record is harmless: findings are a pure
// function of the record, so both writers store the same result.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
	dirty   bool
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]CacheEntry)}
}

// Get returns the stored findings when an entry exists for id and its marker
// equals modified. Absent and stale entries both count as misses.
func (c *Cache) Get(id string, modified int64) (Report, bool) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()

	if !ok || entry.Modified != modified {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return entry.Findings, true
}

// Set stores the findings computed for id at the given marker, overwriting
// any prior entry.
func (c *Cache) Set(id string, modified int64, findings Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = CacheEntry{Modified: modified, Findings: findings}
	c.dirty = true
}

// Delete removes a single entry.
func (c *Cache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		delete(c.entries, id)
		c.dirty = true
	}
}

// Clear removes every entry. Hit/miss counters are not reset.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) > 0 {
		c.dirty = true
	}
	c.entries = make(map[string]CacheEntry)
}

// Prune removes entries whose IDs are not in the keep set, evicting records
// that no longer exist in the source.
func (c *Cache) Prune(keep map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id := range c.entries {
		if !keep[id] {
			delete(c.entries, id)
			c.dirty = true
		}
	}
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Range iterates over all entries.
// callback returns true to continue, false to stop.
func (c *Cache) Range(callback func(id string, entry CacheEntry) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for k, v := range c.entries {
		if !callback(k, v) {
			break
		}
	}
}

// Stats returns the number of hits and misses since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Snapshot copies the entries, e.g. for persistence.
func (c *Cache) Snapshot() map[string]CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]CacheEntry, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// Restore replaces the entries wholesale, e.g. from a persisted snapshot.
// The cache is considered clean afterwards.
func (c *Cache) Restore(entries map[string]CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]CacheEntry, len(entries))
	for k, v := range entries {
		c.entries[k] = v
	}
	c.dirty = false
}

// Dirty reports whether entries changed since the last Restore or MarkClean.
func (c *Cache) Dirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// MarkClean clears the dirty flag, typically after a successful persist.
func (c *Cache) MarkClean() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}
