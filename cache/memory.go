package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ZaguanLabs/hanscan"
)

// cacheEntry holds a cached value with its timestamp.
type cacheEntry struct {
	value     string
	timestamp time.Time
}

// InMemoryCache is a thread-safe in-memory cache with TTL support.
// Load and Save persist it as a flat JSON object.
type InMemoryCache struct {
	cache map[string]cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
}

// NewInMemoryCache creates a new in-memory cache with the specified TTL.
// If ttlSeconds is 0 or negative, entries never expire.
func NewInMemoryCache(ttlSeconds int) *InMemoryCache {
	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	return &InMemoryCache{
		cache: make(map[string]cacheEntry),
		ttl:   ttl,
	}
}

// Get retrieves a value from the cache.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}

	if c.expired(entry, time.Now()) {
		c.mu.Lock()
		delete(c.cache, key)
		c.mu.Unlock()
		return "", false
	}

	return entry.value, true
}

// Set stores a value in the cache.
func (c *InMemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = cacheEntry{
		value:     value,
		timestamp: time.Now(),
	}
	return nil
}

// Len returns the number of entries in the cache (including expired ones).
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

// Entries returns all non-expired entries.
func (c *InMemoryCache) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	result := make(map[string]string, len(c.cache))
	for key, entry := range c.cache {
		if c.expired(entry, now) {
			continue
		}
		result[key] = entry.value
	}
	return result
}

// Scope returns the non-expired entries of one scope keyed by value.
func (c *InMemoryCache) Scope(scope string) map[string]string {
	result := make(map[string]string)
	for key, v := range c.Entries() {
		if s, value, ok := hanscan.SplitCacheKey(key); ok && s == scope {
			result[value] = v
		}
	}
	return result
}

func (c *InMemoryCache) expired(e cacheEntry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.timestamp) > c.ttl
}

// Load replaces the cache contents with the JSON object stored at path.
//
// A missing or unreadable file leaves the cache empty and returns a
// *hanscan.CacheError; callers log it and carry on.
func (c *InMemoryCache) Load(path string) error {
	c.Clear()

	data, err := os.ReadFile(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &hanscan.CacheError{Message: "no cache file at " + path, Cause: err}
		}
		return &hanscan.CacheError{Message: "reading cache file", Cause: err}
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return &hanscan.CacheError{Message: "cache file is corrupt, starting empty", Cause: err}
	}

	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range entries {
		c.cache[k] = cacheEntry{value: v, timestamp: now}
	}
	return nil
}

// Save writes the non-expired entries to path as an indented JSON object
// with sorted keys. The file is replaced atomically.
func (c *InMemoryCache) Save(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Entries()); err != nil {
		return &hanscan.CacheError{Message: "encoding cache", Cause: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &hanscan.CacheError{Message: "creating cache directory", Cause: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return &hanscan.CacheError{Message: "creating temp file", Cause: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := buf.WriteTo(tmp); err != nil {
		tmp.Close()
		return &hanscan.CacheError{Message: "writing cache", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &hanscan.CacheError{Message: "writing cache", Cause: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &hanscan.CacheError{Message: fmt.Sprintf("replacing %s", path), Cause: err}
	}
	return nil
}

var _ KeyCache = (*InMemoryCache)(nil)
