package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ZaguanLabs/hanscan"
)

var csvHeader = []string{"key", "value", "pos"}

// CSVWriter writes key,value,pos rows as UTF-8 with a byte order mark and
// CRLF line endings, the layout spreadsheet tools expect.
type CSVWriter struct{}

// Ext implements Writer.
func (CSVWriter) Ext() string { return ".csv" }

// Write implements Writer.
func (CSVWriter) Write(w io.Writer, _ string, rows []hanscan.Row) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Key, r.Value, r.Pos}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}

// ReadCSV reads a table written by CSVWriter. The byte order mark and the
// header row are optional.
func ReadCSV(r io.Reader) ([]hanscan.Row, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = len(csvHeader)

	var rows []hanscan.Row
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if line == 0 && rec[0] == csvHeader[0] && rec[1] == csvHeader[1] && rec[2] == csvHeader[2] {
			continue
		}
		rows = append(rows, hanscan.Row{Key: rec[0], Value: rec[1], Pos: rec[2]})
	}
	return rows, nil
}
