// Package output writes per-scope translation tables and reads them back.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZaguanLabs/hanscan"
)

// Writer renders the rows of one scope.
type Writer interface {
	Write(w io.Writer, scope string, rows []hanscan.Row) error
	// Ext is the file extension, dot included.
	Ext() string
}

var writers = map[string]Writer{
	"csv":  CSVWriter{},
	"json": JSONWriter{},
	"html": HTMLWriter{},
}

// New returns the writer for a format name.
func New(format string) (Writer, error) {
	w, ok := writers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return w, nil
}

// Formats lists the supported format names.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var unsafeChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// FileName returns a file name for scope that is safe on every platform.
func FileName(scope, ext string) string {
	return unsafeChars.Replace(scope) + ext
}

// WriteFile writes rows into dir and returns the path written.
func WriteFile(wr Writer, dir, scope string, rows []hanscan.Row) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, FileName(scope, wr.Ext()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	if err := wr.Write(f, scope, rows); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// ReadFile reads a table written by any of the writers, chosen by extension.
func ReadFile(path string) ([]hanscan.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	case ".html", ".htm":
		return ReadHTML(f)
	default:
		return nil, fmt.Errorf("cannot read %s: unknown table format", path)
	}
}
