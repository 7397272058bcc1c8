// Package walker lists the source files that make up a scope.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

// Walker traverses directories and keeps files with a known extension.
type Walker struct {
	exts   map[string]bool
	ignore map[string]bool
}

// New creates a Walker. Extensions are matched exactly (".cs"); ignore
// names are compared case-sensitively against directory base names.
func New(exts []string, ignore []string) *Walker {
	w := &Walker{
		exts:   make(map[string]bool, len(exts)),
		ignore: make(map[string]bool, len(ignore)),
	}
	for _, e := range exts {
		w.exts[e] = true
	}
	for _, name := range ignore {
		w.ignore[name] = true
	}
	return w
}

// Ignored reports whether a directory with this base name is skipped.
func (w *Walker) Ignored(name string) bool {
	return w.ignore[name]
}

// Walk returns every matching file under root in lexical order.
// Unreadable subdirectories are logged and skipped.
func (w *Walker) Walk(root string) ([]string, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() {
			if path != root && w.ignore[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if w.exts[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Debug().Int("count", len(files)).Str("root", root).Msg("Discovered files")
	return files, nil
}

// Subdirs returns the names of the immediate subdirectories of root,
// sorted, without the ignored ones.
func (w *Walker) Subdirs(root string) ([]string, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read root: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !w.ignore[e.Name()] {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func checkDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", root)
	}
	return nil
}
