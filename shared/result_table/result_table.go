// Package resulttable renders a header generation result as a table.
package resulttable

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/make-git-version/model"
)

// DrawResultTable writes the generation result to w.
func DrawResultTable(w io.Writer, result model.GenerateResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Version Header")

	source := string(result.Descriptor.Source)
	if result.Descriptor.Source == model.SourceDate {
		source = text.FgYellow.Sprint(source + " (no git metadata)")
	}
	status := text.FgGreen.Sprint("written")
	switch {
	case result.DryRun:
		status = text.FgCyan.Sprint("dry run")
	case !result.Changed:
		status = "unchanged"
	}

	t.AppendRows([]table.Row{
		{"Header", result.HeaderPath},
		{"Macro", result.Macro},
		{"Version", result.Descriptor.Value},
		{"Source", source},
	})
	if result.Descriptor.Commit != "" {
		t.AppendRow(table.Row{"Commit", result.Descriptor.Commit})
	}
	if result.Descriptor.Branch != "" {
		t.AppendRow(table.Row{"Branch", result.Descriptor.Branch})
	}
	if result.Descriptor.Dirty {
		t.AppendRow(table.Row{"Dirty", text.FgRed.Sprint("yes")})
	}
	t.AppendRow(table.Row{"Status", status})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
