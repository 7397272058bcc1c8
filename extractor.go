package hanscan

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ZaguanLabs/hanscan/placeholder"
	"github.com/ZaguanLabs/hanscan/walker"
)

// FileWalker lists the source files of a scope and the scopes under a root.
type FileWalker interface {
	Walk(root string) ([]string, error)
	Subdirs(root string) ([]string, error)
}

// Extractor is the main extraction engine. It walks a scope, scans every
// file, deduplicates the normalized literals and assigns keys.
type Extractor struct {
	scanner    LiteralScanner
	assigner   *KeyAssigner
	walker     FileWalker
	workers    int
	uniqueKeys bool
}

// ExtractorOption is a functional option for configuring the Extractor.
type ExtractorOption func(*Extractor)

// WithKeyAssigner sets the key assigner.
func WithKeyAssigner(a *KeyAssigner) ExtractorOption {
	return func(e *Extractor) {
		e.assigner = a
	}
}

// WithWalker sets the directory walker.
func WithWalker(w FileWalker) ExtractorOption {
	return func(e *Extractor) {
		e.walker = w
	}
}

// WithWorkers sets how many files are scanned concurrently.
func WithWorkers(n int) ExtractorOption {
	return func(e *Extractor) {
		e.workers = n
	}
}

// WithUniqueKeys makes colliding keys within a scope distinct by
// appending _2, _3, ... in output order.
func WithUniqueKeys(enabled bool) ExtractorOption {
	return func(e *Extractor) {
		e.uniqueKeys = enabled
	}
}

// NewExtractor creates an Extractor around a literal scanner.
func NewExtractor(scanner LiteralScanner, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		scanner: scanner,
		walker:  walker.New(DefaultExtensions, DefaultIgnoreFolders),
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.assigner == nil {
		e.assigner = NewKeyAssigner(ScriptHan)
	}
	return e
}

// ScopeStats summarizes one scope.
type ScopeStats struct {
	Files       int // Files scanned
	FailedFiles int // Files that could not be read
	Candidates  int // Literals kept by the scanner, duplicates included
	Unique      int // Rows produced
	Cached      int // Keys found in the cache
	Suggested   int // Keys from the provider
	Generated   int // Keys from the local generator
}

// ScopeResult is the ordered translation table of one scope.
type ScopeResult struct {
	Scope  string
	Dir    string
	Rows   []Row
	Stats  ScopeStats
	Errors []error // Per-file errors; never fatal
}

// ExtractScope extracts the literals under dir as scope.
func (e *Extractor) ExtractScope(ctx context.Context, dir, scope string) (*ScopeResult, error) {
	return e.extract(ctx, NewStore(), dir, scope)
}

// ExtractAll treats every immediate subfolder of root as a scope.
// Results follow the sorted folder order.
func (e *Extractor) ExtractAll(ctx context.Context, root string) ([]*ScopeResult, error) {
	names, err := e.walker.Subdirs(root)
	if err != nil {
		return nil, err
	}

	store := NewStore()
	results := make([]*ScopeResult, 0, len(names))
	for _, name := range names {
		res, err := e.extract(ctx, store, filepath.Join(root, name), name)
		if err != nil {
			return results, fmt.Errorf("scope %s: %w", name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Extractor) extract(ctx context.Context, store *Store, dir, scope string) (*ScopeResult, error) {
	files, err := e.walker.Walk(dir)
	if err != nil {
		return nil, err
	}

	scans, err := scanFiles(ctx, e.scanner, files, e.workers)
	if err != nil {
		return nil, err
	}

	res := &ScopeResult{Scope: scope, Dir: dir}
	res.Stats.Files = len(files)

	for _, fs := range scans {
		if fs.err != nil {
			log.Warn().Err(fs.err).Str("file", fs.path).Msg("Skipping unreadable file")
			res.Errors = append(res.Errors, fs.err)
			res.Stats.FailedFiles++
			continue
		}
		for _, c := range fs.candidates {
			res.Stats.Candidates++
			store.Record(placeholder.Normalize(c.Raw), c.Location, scope)
		}
	}

	records := store.Drain(scope)
	values := make([]string, len(records))
	for i, r := range records {
		values[i] = r.Value
	}

	keys, sources := e.assigner.assign(ctx, scope, values)
	for _, src := range sources {
		switch src {
		case KeyFromCache:
			res.Stats.Cached++
		case KeyFromProvider:
			res.Stats.Suggested++
		default:
			res.Stats.Generated++
		}
	}

	res.Rows = make([]Row, len(records))
	for i, r := range records {
		res.Rows[i] = Row{Key: keys[i], Value: r.Value, Pos: r.Location.Pos()}
	}
	if e.uniqueKeys {
		uniquifyKeys(res.Rows)
	}
	res.Stats.Unique = len(res.Rows)

	log.Info().
		Str("scope", scope).
		Int("files", res.Stats.Files).
		Int("records", res.Stats.Unique).
		Int("cached", res.Stats.Cached).
		Msg("Scope extracted")

	return res, nil
}

// uniquifyKeys suffixes repeated keys with _2, _3, ... in row order.
func uniquifyKeys(rows []Row) {
	taken := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		taken[r.Key] = struct{}{}
	}

	seen := make(map[string]struct{}, len(rows))
	for i := range rows {
		base := rows[i].Key
		if _, dup := seen[base]; !dup {
			seen[base] = struct{}{}
			continue
		}
		for n := 2; ; n++ {
			k := fmt.Sprintf("%s_%d", base, n)
			if _, used := taken[k]; !used {
				rows[i].Key = k
				taken[k] = struct{}{}
				seen[k] = struct{}{}
				break
			}
		}
	}
}
