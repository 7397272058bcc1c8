package hanscan

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ZaguanLabs/hanscan/keygen"
)

// DefaultBatchSize is the number of values sent to a provider per request.
const DefaultBatchSize = 50

// KeyAssigner gives every normalized value a symbolic key.
//
// Lookup order per value is: cache, provider, local generator. Provider
// failures never surface to the caller; the generator's key is used
// instead. Whatever key is chosen is prefixed with the scope and written
// back to the cache so later runs stay stable.
type KeyAssigner struct {
	generator         *keygen.Generator
	provider          KeyProvider
	cache             KeyCache
	batchSize         int
	parallelThreshold int
}

// AssignerOption is a functional option for configuring the KeyAssigner.
type AssignerOption func(*KeyAssigner)

// WithProvider sets the key-suggestion provider.
func WithProvider(p KeyProvider) AssignerOption {
	return func(a *KeyAssigner) {
		a.provider = p
	}
}

// WithCache sets the key cache.
func WithCache(c KeyCache) AssignerOption {
	return func(a *KeyAssigner) {
		a.cache = c
	}
}

// WithBatchSize sets how many values go into one provider request.
func WithBatchSize(n int) AssignerOption {
	return func(a *KeyAssigner) {
		if n > 0 {
			a.batchSize = n
		}
	}
}

// WithGenerator replaces the local key generator.
func WithGenerator(g *keygen.Generator) AssignerOption {
	return func(a *KeyAssigner) {
		a.generator = g
	}
}

// WithParallelLookup enables concurrent cache reads once a batch holds at
// least threshold values. Useful for remote caches.
func WithParallelLookup(threshold int) AssignerOption {
	return func(a *KeyAssigner) {
		a.parallelThreshold = threshold
	}
}

// NewKeyAssigner creates a KeyAssigner for the given script.
func NewKeyAssigner(script Script, opts ...AssignerOption) *KeyAssigner {
	a := &KeyAssigner{
		generator: keygen.New(script.Contains),
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign returns the key for a single value.
func (a *KeyAssigner) Assign(ctx context.Context, value, scope string) string {
	return a.AssignAll(ctx, scope, []string{value})[0]
}

// AssignAll returns one key per value, in order.
func (a *KeyAssigner) AssignAll(ctx context.Context, scope string, values []string) []string {
	keys, _ := a.assign(ctx, scope, values)
	return keys
}

func (a *KeyAssigner) assign(ctx context.Context, scope string, values []string) ([]string, []KeySource) {
	keys := make([]string, len(values))
	sources := make([]KeySource, len(values))

	cached := a.lookup(scope, values)
	var misses []int
	for i := range values {
		if k, ok := cached[i]; ok {
			keys[i] = keygen.EnsurePrefix(k, scope)
			sources[i] = KeyFromCache
			continue
		}
		misses = append(misses, i)
	}

	if a.provider != nil && len(misses) > 0 {
		a.suggest(ctx, scope, values, misses, keys, sources)
	}

	for _, i := range misses {
		if keys[i] == "" {
			keys[i] = a.generator.Key(values[i], scope)
			sources[i] = KeyFromDefault
		}
		if a.cache == nil {
			continue
		}
		if err := a.cache.Set(CacheKey(scope, values[i]), keys[i]); err != nil {
			log.Warn().Err(err).Str("scope", scope).Msg("Failed to cache key")
		}
	}

	return keys, sources
}

// lookup returns cached keys by value index.
func (a *KeyAssigner) lookup(scope string, values []string) map[int]string {
	if a.cache == nil || len(values) == 0 {
		return nil
	}
	if a.parallelThreshold > 0 && len(values) >= a.parallelThreshold {
		return parallelCacheLookup(a.cache, scope, values)
	}

	found := make(map[int]string)
	for i, v := range values {
		if k, ok := a.cache.Get(CacheKey(scope, v)); ok && k != "" {
			found[i] = k
		}
	}
	return found
}

// suggest asks the provider for keys of the missed values, batch by batch.
// A failed batch leaves its keys empty so the generator fills them in.
func (a *KeyAssigner) suggest(ctx context.Context, scope string, values []string, misses []int, keys []string, sources []KeySource) {
	for start := 0; start < len(misses); start += a.batchSize {
		end := min(start+a.batchSize, len(misses))
		batch := misses[start:end]

		req := KeyRequest{Scope: scope, Values: make([]string, len(batch))}
		for j, i := range batch {
			req.Values[j] = values[i]
		}

		suggested, err := a.provider.SuggestKeys(ctx, req)
		if err == nil && len(suggested) != len(batch) {
			err = &CountMismatchError{Expected: len(batch), Got: len(suggested)}
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Debug().Str("scope", scope).Msg("Key suggestion cancelled")
			} else {
				log.Warn().Err(err).Str("scope", scope).Int("values", len(batch)).
					Msg("Key suggestion failed, using generated keys")
			}
			continue
		}

		for j, i := range batch {
			k := keygen.Sanitize(suggested[j])
			if k == "" {
				log.Debug().Str("scope", scope).Str("value", values[i]).Msg("Provider returned an unusable key")
				continue
			}
			keys[i] = keygen.EnsurePrefix(k, scope)
			sources[i] = KeyFromProvider
		}
	}
}
