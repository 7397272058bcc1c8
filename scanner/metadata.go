package scanner

import "strings"

// IsMetadataLine reports whether line is a lone attribute such as
// [Tooltip("提示")]: after trimming it opens with [ and has nothing but
// whitespace after the matching ]. Anything else behind that bracket,
// a second attribute or a trailing comment included, makes it an
// ordinary line.
func IsMetadataLine(line string) bool {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "[") {
		return false
	}
	end := matchBracket(s)
	return end == len(s)-1
}

// matchBracket returns the index of the ] closing the [ at s[0], skipping
// brackets inside quoted text, or -1.
func matchBracket(s string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
