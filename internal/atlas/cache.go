package atlas

import (
	"path/filepath"
	"strings"
	"sync"
)

// Cache is a concurrency-safe cache of atlases loaded from disk, keyed by
// image path. Failed loads are cached too, so a bad atlas is read once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	atlas *Atlas
	err   error
}

// NewCache creates an empty atlas cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// TablePath returns the rect table path paired with an atlas image:
// the same path with a .json extension.
func TablePath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".json"
}

// Resolve loads and caches the atlas at imagePath with its paired table.
func (c *Cache) Resolve(imagePath string) (*Atlas, error) {
	key := filepath.Clean(imagePath)

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[key]; exists {
		c.mu.RUnlock()
		return entry.atlas, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	a, err := Load(key, TablePath(key))

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[key]; exists {
		return entry.atlas, entry.err
	}
	c.items[key] = &cacheEntry{atlas: a, err: err}
	return a, err
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
