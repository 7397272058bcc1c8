package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ZaguanLabs/hanscan"
)

type jsonTable struct {
	Scope string        `json:"scope"`
	Rows  []hanscan.Row `json:"rows"`
}

// JSONWriter writes {"scope": ..., "rows": [...]}.
type JSONWriter struct{}

// Ext implements Writer.
func (JSONWriter) Ext() string { return ".json" }

// Write implements Writer.
func (JSONWriter) Write(w io.Writer, scope string, rows []hanscan.Row) error {
	if rows == nil {
		rows = []hanscan.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonTable{Scope: scope, Rows: rows})
}

// ReadJSON reads a table written by JSONWriter.
func ReadJSON(r io.Reader) ([]hanscan.Row, error) {
	var t jsonTable
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	return t.Rows, nil
}
