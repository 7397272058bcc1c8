package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ZaguanLabs/hanscan"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
	boldColor = color.New(color.Bold)
)

func printWritten(w io.Writer, res *hanscan.ScopeResult, path string) {
	okColor.Fprintf(w, "✓ %s: %d rows", res.Scope, len(res.Rows))
	fmt.Fprintf(w, " -> %s (%d cached, %d suggested, %d generated)\n",
		path, res.Stats.Cached, res.Stats.Suggested, res.Stats.Generated)
}

func printTotal(w io.Writer, scopes, rows int) {
	boldColor.Fprintf(w, "%d modules, %d rows\n", scopes, rows)
}

// printRows prints a table for --dry-run.
func printRows(w io.Writer, res *hanscan.ScopeResult) {
	boldColor.Fprintf(w, "%s (%d rows)\n", res.Scope, len(res.Rows))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "key\tvalue\tpos")
	for _, r := range res.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Key, r.Value, r.Pos)
	}
	tw.Flush()
}

func printDiff(w io.Writer, scope string, d *hanscan.DiffResult) {
	s := d.Stats()
	boldColor.Fprintf(w, "%s: ", scope)
	fmt.Fprintf(w, "%d added, %d removed, %d rekeyed, %d unchanged\n", s.Added, s.Removed, s.Rekeyed, s.Unchanged)
	if !d.HasChanges() {
		fmt.Fprintln(w, "No changes")
		return
	}

	for _, r := range d.Added {
		okColor.Fprintf(w, "+ %s %s (%s)\n", r.Key, r.Value, r.Pos)
	}
	for _, r := range d.Removed {
		errColor.Fprintf(w, "- %s %s (%s)\n", r.Key, r.Value, r.Pos)
	}
	for _, r := range d.Rekeyed {
		warnColor.Fprintf(w, "~ %s -> %s %s (%s)\n", r.Old.Key, r.New.Key, r.New.Value, r.New.Pos)
	}
}
