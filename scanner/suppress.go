package scanner

import "regexp"

// exceptionTypes are the constructors whose literal arguments are never
// user-facing text.
const exceptionTypes = `Exception|NullReferenceException|ArgumentNullException|ArgumentException|` +
	`IndexOutOfRangeException|InvalidOperationException|NotImplementedException|` +
	`UnauthorizedAccessException|KeyNotFoundException|DivideByZeroException|OverflowException|` +
	`FormatException|TimeoutException|IOException|DirectoryNotFoundException|` +
	`FileNotFoundException|PathTooLongException`

// DefaultSuppressPatterns match logging, dialog and exception calls.
var DefaultSuppressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Debug\.(Log|LogError|LogWarning|LogFormat|LogException)`),
	regexp.MustCompile(`SLApp\.Log\.(Info|Warning|Error)`),
	regexp.MustCompile(`SLApp\.Debug\.(Log|LogFormat|LogError|LogWatchBegin|LogWatchEnd)`),
	regexp.MustCompile(`UnityEngine\.Debug\.`),
	regexp.MustCompile(`Console\.WriteLine`),
	regexp.MustCompile(`UnityEditor\.EditorUtility\.DisplayDialog`),
	regexp.MustCompile(`throw\s+new\s+(?:System\.)?(?:` + exceptionTypes + `)\s*\([^)]*\)`),
	regexp.MustCompile(`\.LogException\s*\(`),
	regexp.MustCompile(`\.LogErrorException\s*\(`),
	regexp.MustCompile(`ExceptionHelper\.`),
}

// SuppressionFilter decides whether a raw line is a diagnostic call.
//
// Matching is textual and line-granular: every literal on a matching line
// is dropped, including literals outside the call, and a call split over
// several lines only suppresses the line holding the pattern.
type SuppressionFilter struct {
	patterns []*regexp.Regexp
}

// NewSuppressionFilter creates a filter with the default patterns plus extra.
func NewSuppressionFilter(extra ...*regexp.Regexp) *SuppressionFilter {
	patterns := make([]*regexp.Regexp, 0, len(DefaultSuppressPatterns)+len(extra))
	patterns = append(patterns, DefaultSuppressPatterns...)
	patterns = append(patterns, extra...)
	return &SuppressionFilter{patterns: patterns}
}

// CompilePatterns compiles extra suppression patterns from configuration.
func CompilePatterns(exprs []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// Suppress reports whether raw matches any pattern.
func (f *SuppressionFilter) Suppress(raw string) bool {
	for _, p := range f.patterns {
		if p.MatchString(raw) {
			return true
		}
	}
	return false
}
