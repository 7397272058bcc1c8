package hanscan

import (
	"context"
	"fmt"
	"io"
)

// LiteralKind tells how a literal was delimited in source.
type LiteralKind int

const (
	// KindPlain is an ordinary "..." literal.
	KindPlain LiteralKind = iota
	// KindInterpolated is a $"..." literal whose {expr} spans are evaluated at runtime.
	KindInterpolated
)

func (k LiteralKind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindInterpolated:
		return "interpolated"
	default:
		return fmt.Sprintf("LiteralKind(%d)", int(k))
	}
}

// SourceLocation identifies the line a literal was found on.
type SourceLocation struct {
	FileName string // Base name of the file
	Line     int    // 1-based line number
}

// Pos renders the location as "<file>---<line>".
func (l SourceLocation) Pos() string {
	return fmt.Sprintf("%s---%d", l.FileName, l.Line)
}

// Candidate is a raw literal found by the scanner, before normalization.
type Candidate struct {
	Raw      string         // Text between the delimiters, escapes untouched
	Kind     LiteralKind    // Plain or interpolated
	Location SourceLocation // Where it was found
}

// ExtractionRecord is one unique normalized literal within a scope.
type ExtractionRecord struct {
	Value    string         // Normalized literal ({0}, {1}, ...)
	Location SourceLocation // First occurrence
}

// Row is one line of the translation table handed to an output sink.
type Row struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Pos   string `json:"pos"`
}

// KeySource records where a row's key came from.
type KeySource int

const (
	KeyFromDefault KeySource = iota
	KeyFromCache
	KeyFromProvider
)

// LiteralScanner extracts candidate literals from one source file.
type LiteralScanner interface {
	Extract(fileName string, r io.Reader) ([]Candidate, error)
}

// KeyProvider suggests symbolic keys for a batch of normalized values.
type KeyProvider interface {
	SuggestKeys(ctx context.Context, req KeyRequest) ([]string, error)
}

// KeyRequest contains the parameters for a key-suggestion request.
type KeyRequest struct {
	Values []string // Normalized literals
	Scope  string   // Scope name, used as context and key prefix
}

// KeyCache is a persistent "scope:value" -> key lookup.
type KeyCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// DefaultIgnoreFolders are directory names never descended into.
var DefaultIgnoreFolders = []string{"bind", "Bind", "BIND", ".git", ".svn", "node_modules"}

// DefaultExtensions are the source file extensions scanned by default.
var DefaultExtensions = []string{".cs"}
