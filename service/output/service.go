// Package output provides a service for rendering results to the console.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/storage"
)

// NewService creates a new output service with the specified format writing to stdout.
func NewService(format string) Service {
	return NewServiceWithWriter(format, os.Stdout)
}

// NewServiceWithWriter creates a new output service writing to w.
func NewServiceWithWriter(format string, w io.Writer) Service {
	f := FormatText
	switch format {
	case "json":
		f = FormatJSON
	case "table":
		f = FormatTable
	}

	return &service{
		format:   f,
		renderer: &realRenderer{},
		out:      w,
	}
}

func (s *service) RenderResult(result model.GenerateResult) error {
	s.renderer.StopSpinner()
	switch s.format {
	case FormatJSON:
		return s.renderer.OutputResultJSON(s.out, result)
	case FormatTable:
		s.renderer.DrawResultTable(s.out, result)
		return nil
	}

	if result.DryRun {
		_, err := io.WriteString(s.out, result.Content)
		return err
	}
	status := "updated"
	if !result.Changed {
		status = "unchanged"
	}
	_, err := fmt.Fprintf(s.out, "%s: %s=%q (%s, %s)\n",
		result.HeaderPath, result.Macro, result.Descriptor.Value, result.Descriptor.Source, status)
	return err
}

func (s *service) RenderHistory(generations []storage.Generation) error {
	switch s.format {
	case FormatJSON:
		return s.renderer.OutputHistoryJSON(s.out, generations)
	case FormatTable:
		s.renderer.DrawHistoryTable(s.out, generations)
		return nil
	}

	for _, g := range generations {
		if _, err := fmt.Fprintf(s.out, "%d\t%s\t%s\t%s\t%s\n",
			g.GenerationID, g.GeneratedAt.Local().Format("2006-01-02 15:04:05"), g.SourcePath, g.Version, g.VersionSource); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) RenderVersion(info model.VersionInfo) error {
	if s.format == FormatJSON {
		b, err := json.MarshalIndent(map[string]string{
			"version": info.Version,
			"commit":  info.Commit,
			"date":    info.Date,
		}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.out, string(b))
		return err
	}
	_, err := fmt.Fprintf(s.out, "make-git-version %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
	return err
}

func (s *service) StopSpinner() {
	s.renderer.StopSpinner()
}
