// Package keygen derives symbolic translation keys from normalized literal
// text without any external service.
package keygen

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ZaguanLabs/hanscan/placeholder"
)

// MaxKeyLen is the ceiling on the length of a generated key, scope prefix
// included.
const MaxKeyLen = 50

// Generator builds keys from a character table.
type Generator struct {
	words    map[rune]string
	inScript func(rune) bool
	maxLen   int
}

// Option configures a Generator.
type Option func(*Generator)

// WithWords replaces the character to token table.
func WithWords(words map[rune]string) Option {
	return func(g *Generator) {
		g.words = words
	}
}

// WithMaxLen overrides MaxKeyLen.
func WithMaxLen(n int) Option {
	return func(g *Generator) {
		g.maxLen = n
	}
}

// New creates a Generator. inScript decides which runes belong to the
// source script; runes outside it are ignored.
func New(inScript func(rune) bool, opts ...Option) *Generator {
	g := &Generator{
		words:    DefaultWords,
		inScript: inScript,
		maxLen:   MaxKeyLen,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Key returns the default key for a normalized value in scope.
//
// Script runes are mapped through the table and joined with "_". A mapping
// that is itself still a script rune is dropped. When nothing survives the
// key falls back to <SCOPE>_PARAM_<n> (n placeholders) or <SCOPE>_TEXT.
func (g *Generator) Key(value, scope string) string {
	prefix := strings.ToUpper(scope)
	params := placeholder.Count(value)

	text := placeholder.Strip(value)
	if text == "" {
		return g.clamp(join(prefix, "PARAM_"+strconv.Itoa(params)))
	}

	var words []string
	for _, r := range text {
		if !g.inScript(r) {
			continue
		}
		token, ok := g.words[r]
		if !ok {
			token = string(r)
		}
		if g.stillInScript(token) {
			continue
		}
		words = append(words, token)
	}

	if len(words) == 0 {
		if params > 0 {
			return g.clamp(join(prefix, "PARAM_"+strconv.Itoa(params)))
		}
		return g.clamp(join(prefix, "TEXT"))
	}

	return g.clamp(join(prefix, strings.Join(words, "_")))
}

// clamp cuts key to at most maxLen runes. The cut is plain, so a key may
// end in the separator.
func (g *Generator) clamp(key string) string {
	if g.maxLen <= 0 || utf8.RuneCountInString(key) <= g.maxLen {
		return key
	}
	return string([]rune(key)[:g.maxLen])
}

func (g *Generator) stillInScript(token string) bool {
	r, size := utf8.DecodeRuneInString(token)
	return size == len(token) && g.inScript(r)
}

// EnsurePrefix prepends UPPER(scope)+"_" to key unless it already starts with it.
func EnsurePrefix(key, scope string) string {
	if scope == "" {
		return key
	}
	prefix := strings.ToUpper(scope) + "_"
	if strings.HasPrefix(key, prefix) {
		return key
	}
	return prefix + key
}

// Sanitize turns free-form provider output into an identifier made of
// upper-case ASCII letters, digits and single underscores. It returns ""
// when nothing usable remains.
func Sanitize(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.Index(raw, "->"); i >= 0 {
		raw = raw[i+2:]
	}

	var sb strings.Builder
	underscore := false
	for _, r := range strings.ToUpper(raw) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			underscore = false
		case sb.Len() > 0 && !underscore:
			sb.WriteByte('_')
			underscore = true
		}
	}

	return strings.TrimRight(sb.String(), "_")
}

func join(prefix, body string) string {
	if prefix == "" {
		return body
	}
	return prefix + "_" + body
}
