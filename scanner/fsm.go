package scanner

import (
	"fmt"
	"strings"
)

// State is the position of the lexer relative to comments and strings.
// Only StateBlockComment carries over from one line to the next.
type State int

const (
	StateCode State = iota
	StateString
	StateBlockComment
)

func (s State) String() string {
	switch s {
	case StateCode:
		return "CODE"
	case StateString:
		return "IN_STRING"
	case StateBlockComment:
		return "IN_BLOCK_COMMENT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// literal is a string literal found on one line.
type literal struct {
	text         string
	interpolated bool
}

// lexResult is what lexLine learned about a line.
type lexResult struct {
	literals []literal
	comment  bool  // the line belongs to a block comment and yields nothing
	next     State // state at the start of the next line
}

// lexLine runs the state machine over one raw line.
//
// In StateBlockComment the whole line is comment; a */ anywhere on it
// returns to StateCode for the next line. In StateCode a /* outside a
// literal turns the whole line into comment, including any literal before
// it, and the state stays StateBlockComment unless */ follows on the same
// line.
//
// A // outside a literal does not end the search: quoted text in a trailing
// comment is still reported. From there on only "..." pairs count, so an
// apostrophe or a /* in the comment text changes nothing.
//
// Char literals are skipped. A backslash escapes the next byte in every
// string; verbatim strings (@"...") additionally treat "" as a quote.
// A string still open at the end of the line is dropped.
func lexLine(raw string, state State) lexResult {
	if state == StateBlockComment {
		if strings.Contains(raw, "*/") {
			return lexResult{comment: true, next: StateCode}
		}
		return lexResult{comment: true, next: StateBlockComment}
	}

	var res lexResult
	lineComment := false
	n := len(raw)
	for i := 0; i < n; i++ {
		c := raw[i]
		switch {
		case lineComment && c != '"':
			// comment text

		case c == '/' && i+1 < n && raw[i+1] == '/':
			lineComment = true
			i++

		case c == '/' && i+1 < n && raw[i+1] == '*':
			next := StateBlockComment
			if strings.Contains(raw[i+2:], "*/") {
				next = StateCode
			}
			return lexResult{comment: true, next: next}

		case c == '\'':
			i = skipChar(raw, i)

		case c == '"':
			interpolated, verbatim := prefix(raw, i)
			end, ok := closeString(raw, i+1, verbatim)
			if !ok {
				return res
			}
			res.literals = append(res.literals, literal{
				text:         raw[i+1 : end],
				interpolated: interpolated,
			})
			i = end
		}
	}
	return res
}

// prefix inspects the $ and @ markers in front of the quote at i.
func prefix(raw string, i int) (interpolated, verbatim bool) {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		switch raw[j] {
		case '$':
			interpolated = true
		case '@':
			verbatim = true
		default:
			return interpolated, verbatim
		}
	}
	return interpolated, verbatim
}

// closeString returns the index of the quote closing a string whose
// content starts at i.
func closeString(raw string, i int, verbatim bool) (int, bool) {
	for j := i; j < len(raw); j++ {
		switch raw[j] {
		case '\\':
			j++
		case '"':
			if verbatim && j+1 < len(raw) && raw[j+1] == '"' {
				j++
				continue
			}
			return j, true
		}
	}
	return 0, false
}

// skipChar returns the index of the quote closing the char literal opened
// at i, or the last index of the line.
func skipChar(raw string, i int) int {
	for j := i + 1; j < len(raw); j++ {
		switch raw[j] {
		case '\\':
			j++
		case '\'':
			return j
		}
	}
	return len(raw) - 1
}
