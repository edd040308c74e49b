package output

import (
	"io"

	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/storage"
	historytable "github.com/thirukguru/make-git-version/shared/history_table"
	jsonoutput "github.com/thirukguru/make-git-version/shared/json_output"
	resulttable "github.com/thirukguru/make-git-version/shared/result_table"
	"github.com/thirukguru/make-git-version/shared/spinner"
)

// Format represents the output format type
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Renderer defines the interface for drawing results
type Renderer interface {
	DrawResultTable(w io.Writer, result model.GenerateResult)
	DrawHistoryTable(w io.Writer, generations []storage.Generation)
	OutputResultJSON(w io.Writer, result model.GenerateResult) error
	OutputHistoryJSON(w io.Writer, generations []storage.Generation) error
	StopSpinner()
}

type realRenderer struct{}

func (r *realRenderer) DrawResultTable(w io.Writer, result model.GenerateResult) {
	resulttable.DrawResultTable(w, result)
}

func (r *realRenderer) DrawHistoryTable(w io.Writer, generations []storage.Generation) {
	historytable.RenderHistoryTable(w, generations)
}

func (r *realRenderer) OutputResultJSON(w io.Writer, result model.GenerateResult) error {
	return jsonoutput.OutputResultJSON(w, result)
}

func (r *realRenderer) OutputHistoryJSON(w io.Writer, generations []storage.Generation) error {
	return jsonoutput.OutputHistoryJSON(w, generations)
}

func (r *realRenderer) StopSpinner() {
	spinner.StopSpinner()
}

// service is the internal implementation
type service struct {
	format   Format
	renderer Renderer
	out      io.Writer
}

// Service defines the interface for output operations
type Service interface {
	RenderResult(result model.GenerateResult) error
	RenderHistory(generations []storage.Generation) error
	RenderVersion(info model.VersionInfo) error
	StopSpinner()
}
