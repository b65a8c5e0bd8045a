package resolver

import "sync"

// Cache remembers the outcome of a lookup by normalized name. An empty video
// URL is a remembered miss. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (videoURL string, ok bool)
	Set(key, videoURL string)
}

// MapCache is an unbounded in-process Cache. Later writes overwrite earlier ones.
type MapCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string]string)}
}

func (c *MapCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *MapCache) Set(key, videoURL string) {
	c.mu.Lock()
	c.entries[key] = videoURL
	c.mu.Unlock()
}

// Len reports the number of cached names.
func (c *MapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// noCache is used when caching is disabled.
type noCache struct{}

func (noCache) Get(string) (string, bool) { return "", false }
func (noCache) Set(string, string)        {}
