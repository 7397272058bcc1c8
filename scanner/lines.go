package scanner

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxLineSize is the longest physical line the scanner accepts.
const MaxLineSize = 4 * 1024 * 1024

// Line is one physical source line.
type Line struct {
	Number int    // 1-based
	Code   string // Raw with the trailing // comment removed
	Raw    string // As read, without the line terminator
}

// LineScanner yields the lines of a file one at a time. It cannot be
// restarted. A UTF-8 byte order mark is dropped and UTF-16 input with a
// byte order mark is transcoded to UTF-8.
type LineScanner struct {
	sc   *bufio.Scanner
	line Line
}

// NewLineScanner creates a LineScanner reading from r.
func NewLineScanner(r io.Reader) *LineScanner {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(r, dec))
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &LineScanner{sc: sc}
}

// Scan advances to the next line.
func (s *LineScanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	raw := strings.TrimSuffix(s.sc.Text(), "\r")
	s.line = Line{
		Number: s.line.Number + 1,
		Code:   StripComment(raw),
		Raw:    raw,
	}
	return true
}

// Line returns the current line.
func (s *LineScanner) Line() Line {
	return s.line
}

// Err returns the first read error, if any.
func (s *LineScanner) Err() error {
	return s.sc.Err()
}

// StripComment cuts line at the first // that is not inside a '...' or
// "..." literal. A quote directly preceded by a backslash does not close
// the literal.
func StripComment(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote && line[i-1] != '\\' {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}
	return line
}
