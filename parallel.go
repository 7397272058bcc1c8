package hanscan

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// fileScan holds the outcome of scanning one file.
type fileScan struct {
	path       string
	candidates []Candidate
	err        error
}

// scanFiles runs s over every file and returns the results in input order.
// With more than one worker files are scanned concurrently; each result is
// stored at its own index so the merge order never depends on scheduling.
func scanFiles(ctx context.Context, s LiteralScanner, files []string, workers int) ([]fileScan, error) {
	results := make([]fileScan, len(files))

	if workers <= 1 {
		for i, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = scanFile(s, path)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scanFile(s, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanFile(s LiteralScanner, path string) fileScan {
	f, err := os.Open(path)
	if err != nil {
		return fileScan{path: path, err: &ScanError{Path: path, Cause: err}}
	}
	defer f.Close()

	candidates, err := s.Extract(filepath.Base(path), f)
	if err != nil {
		return fileScan{path: path, err: &ScanError{Path: path, Cause: err}}
	}
	return fileScan{path: path, candidates: candidates}
}

// parallelCacheLookup reads the keys of values from c concurrently.
// It returns the hits by value index.
func parallelCacheLookup(c KeyCache, scope string, values []string) map[int]string {
	found := make(map[int]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, v := range values {
		i, v := i, v
		wg.Add(1)
		go func() {
			defer wg.Done()
			k, ok := c.Get(CacheKey(scope, v))
			if !ok || k == "" {
				return
			}
			mu.Lock()
			found[i] = k
			mu.Unlock()
		}()
	}
	wg.Wait()

	return found
}
