// Package historytable renders stored generations.
package historytable

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/thirukguru/make-git-version/service/storage"
)

// RenderHistoryTable prints an ASCII table of stored generations.
func RenderHistoryTable(w io.Writer, generations []storage.Generation) {
	if len(generations) == 0 {
		fmt.Fprintln(w, "No generations recorded")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Generated", "Source", "Version", "From", "Commit", "Changed"})
	for _, g := range generations {
		t.AppendRow(table.Row{
			g.GenerationID,
			g.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			g.SourcePath,
			g.Version,
			g.VersionSource,
			shortCommit(g.Commit),
			g.Changed,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func shortCommit(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
