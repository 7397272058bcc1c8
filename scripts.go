package hanscan

import (
	"strings"
	"unicode"
)

// Script is the writing system whose literals are extracted.
type Script struct {
	Name  string
	Table *unicode.RangeTable
}

// Contains reports whether r belongs to the script.
func (s Script) Contains(r rune) bool {
	if s.Table == nil {
		return false
	}
	return unicode.Is(s.Table, r)
}

// ContainsAny reports whether text has at least one rune of the script.
func (s Script) ContainsAny(text string) bool {
	for _, r := range text {
		if s.Contains(r) {
			return true
		}
	}
	return false
}

func (s Script) String() string {
	return s.Name
}

// ScriptHan is the CJK Unified Ideographs block (U+4E00..U+9FFF), the
// default target script.
var ScriptHan = Script{
	Name: "han",
	Table: &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}},
	},
}

// Scripts maps configuration names to the supported scripts.
var Scripts = map[string]Script{
	"han":    ScriptHan,
	"hanext": {Name: "hanext", Table: unicode.Han},
	"hangul": {Name: "hangul", Table: unicode.Hangul},
	"kana":   {Name: "kana", Table: kana},
}

var kana = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3041, Hi: 0x3096, Stride: 1},
		{Lo: 0x30A1, Hi: 0x30FA, Stride: 1},
	},
}

// LookupScript returns the script registered under name.
// Names are case-insensitive; an empty name selects ScriptHan.
func LookupScript(name string) (Script, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ScriptHan, true
	}
	s, ok := Scripts[name]
	return s, ok
}
