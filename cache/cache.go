// Package cache stores assigned keys between runs.
//
// Entries map "scope:value" to a symbolic key, the same layout the legacy
// translation_cache.json file uses.
package cache

// KeyCache is the interface for key caching.
type KeyCache interface {
	// Get retrieves a cached key. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a key in the cache.
	Set(key string, value string) error
}
