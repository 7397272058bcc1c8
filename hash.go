package hanscan

import "strings"

// CacheKey builds the lookup key for a normalized value in scope.
// The "scope:value" layout matches existing translation_cache.json files.
func CacheKey(scope, value string) string {
	return scope + ":" + value
}

// SplitCacheKey is the inverse of CacheKey. The scope never contains a
// colon, so the first one separates the two parts.
func SplitCacheKey(key string) (scope, value string, ok bool) {
	return strings.Cut(key, ":")
}
