// Package scanner finds candidate string literals in C#-style source.
//
// Each line goes through four steps: block-comment tracking, the
// attribute-line check, the suppression filter on the raw line and
// finally literal extraction. Only the block-comment state survives from
// one line to the next.
package scanner

import (
	"io"

	"github.com/ZaguanLabs/hanscan"
	"github.com/ZaguanLabs/hanscan/placeholder"
)

// Scanner extracts candidates written in one script.
type Scanner struct {
	script hanscan.Script
	filter *SuppressionFilter
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithSuppressionFilter replaces the default filter.
func WithSuppressionFilter(f *SuppressionFilter) Option {
	return func(s *Scanner) {
		s.filter = f
	}
}

// New creates a Scanner for script.
func New(script hanscan.Script, opts ...Option) *Scanner {
	s := &Scanner{
		script: script,
		filter: NewSuppressionFilter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extract returns the candidates of one file in line order.
// fileName is used for the reported locations only.
func (s *Scanner) Extract(fileName string, r io.Reader) ([]hanscan.Candidate, error) {
	var out []hanscan.Candidate
	state := StateCode

	lines := NewLineScanner(r)
	for lines.Scan() {
		line := lines.Line()

		res := lexLine(line.Raw, state)
		state = res.next
		if res.comment {
			continue
		}
		if IsMetadataLine(line.Raw) || s.filter.Suppress(line.Raw) {
			continue
		}

		loc := hanscan.SourceLocation{FileName: fileName, Line: line.Number}
		seen := make(map[string]struct{}, len(res.literals))
		for _, lit := range res.literals {
			if !s.keep(lit) {
				continue
			}
			if _, dup := seen[lit.text]; dup {
				continue
			}
			seen[lit.text] = struct{}{}

			kind := hanscan.KindPlain
			if lit.interpolated {
				kind = hanscan.KindInterpolated
			}
			out = append(out, hanscan.Candidate{Raw: lit.text, Kind: kind, Location: loc})
		}
	}
	if err := lines.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func (s *Scanner) keep(lit literal) bool {
	if s.script.ContainsAny(lit.text) {
		return true
	}
	return lit.interpolated && placeholder.Has(lit.text)
}
