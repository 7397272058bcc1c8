package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ZaguanLabs/hanscan"
)

const reportStyle = `body{font-family:sans-serif;margin:2em}
table{border-collapse:collapse}
th,td{border:1px solid #ccc;padding:4px 8px;text-align:left}
td.key{font-family:monospace}
td.pos{color:#666}`

// HTMLWriter writes a standalone report page with one table row per
// literal. Text is escaped by the renderer.
type HTMLWriter struct{}

// Ext implements Writer.
func (HTMLWriter) Ext() string { return ".html" }

// Write implements Writer.
func (HTMLWriter) Write(w io.Writer, scope string, rows []hanscan.Row) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), scope))
	head.AppendChild(withText(element(atom.Style), reportStyle))
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), scope))
	body.AppendChild(withText(element(atom.P, attr("class", "summary")), fmt.Sprintf("%d rows", len(rows))))

	table := element(atom.Table, attr("class", "rows"))
	thead := element(atom.Thead)
	hr := element(atom.Tr)
	for _, h := range csvHeader {
		hr.AppendChild(withText(element(atom.Th), h))
	}
	thead.AppendChild(hr)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, r := range rows {
		tr := element(atom.Tr)
		tr.AppendChild(withText(element(atom.Td, attr("class", "key")), r.Key))
		tr.AppendChild(withText(element(atom.Td, attr("class", "value")), r.Value))
		tr.AppendChild(withText(element(atom.Td, attr("class", "pos")), r.Pos))
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	body.AppendChild(table)
	root.AppendChild(body)

	if err := html.Render(w, doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ReadHTML reads the table of a report written by HTMLWriter.
func ReadHTML(r io.Reader) ([]hanscan.Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	table := doc.Find("table.rows")
	if table.Length() == 0 {
		return nil, fmt.Errorf("read html: no report table")
	}

	var rows []hanscan.Row
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, hanscan.Row{
			Key:   strings.TrimSpace(tr.Find("td.key").Text()),
			Value: tr.Find("td.value").Text(),
			Pos:   strings.TrimSpace(tr.Find("td.pos").Text()),
		})
	})
	return rows, nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}
