package scanner

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineScanner(t *testing.T) {
	ls := NewLineScanner(strings.NewReader("a = 1; // one\r\n\r\nb = \"//\"; // two"))

	var got []Line
	for ls.Scan() {
		got = append(got, ls.Line())
	}
	if err := ls.Err(); err != nil {
		t.Fatal(err)
	}

	want := []Line{
		{Number: 1, Code: "a = 1; ", Raw: "a = 1; // one"},
		{Number: 2, Code: "", Raw: ""},
		{Number: 3, Code: `b = "//"; `, Raw: `b = "//"; // two`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLineScanner_LongLine(t *testing.T) {
	long := strings.Repeat("字", 200_000) // 600 KB, past bufio's default limit
	ls := NewLineScanner(strings.NewReader("x = \"" + long + "\";\n"))

	if !ls.Scan() {
		t.Fatalf("Scan failed: %v", ls.Err())
	}
	if len(ls.Line().Raw) != len(long)+7 {
		t.Errorf("unexpected line length %d", len(ls.Line().Raw))
	}
}

func TestStripComment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`x = 1; // comment`, `x = 1; `},
		{`s = "http://example.com";`, `s = "http://example.com";`},
		{`s = "a\"//b"; // c`, `s = "a\"//b"; `},
		{`c = '/'; // slash`, `c = '/'; `},
		{`// whole line`, ``},
		{`no comment`, `no comment`},
		{`a / b`, `a / b`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := StripComment(tt.input); got != tt.expected {
				t.Errorf("StripComment(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
