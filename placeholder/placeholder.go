// Package placeholder rewrites substitution expressions embedded in literal
// text into a canonical positional form.
//
// A placeholder is any {...} span closed by the first } after the opening
// brace, so nested expressions are not balanced: "{a{b}c}" yields the span
// "{a{b}" followed by the text "c}".
package placeholder

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// span matches one placeholder expression, non-greedy and non-nested.
	span = regexp.MustCompile(`\{[^}]+\}`)

	// canonical matches a placeholder already in positional form.
	canonical = regexp.MustCompile(`\{[0-9]+\}`)
)

// Normalize replaces every placeholder span, in left-to-right order of
// appearance, with {0}, {1}, {2}, ... Each occurrence gets its own index even
// when the expression text repeats.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	locs := span.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))

	last := 0
	for i, loc := range locs {
		sb.WriteString(text[last:loc[0]])
		sb.WriteByte('{')
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte('}')
		last = loc[1]
	}
	sb.WriteString(text[last:])

	return sb.String()
}

// Has reports whether text contains at least one placeholder expression.
func Has(text string) bool {
	return span.MatchString(text)
}

// Spans returns the raw placeholder expressions in order of appearance.
func Spans(text string) []string {
	return span.FindAllString(text, -1)
}

// Count returns the number of canonical {n} placeholders in text.
func Count(text string) int {
	return len(canonical.FindAllStringIndex(text, -1))
}

// Strip removes canonical {n} placeholders and trims surrounding space.
func Strip(text string) string {
	return strings.TrimSpace(canonical.ReplaceAllString(text, ""))
}
