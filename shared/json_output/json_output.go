package jsonoutput

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/storage"
)

// ResultJSON is the JSON document printed for a generation.
type ResultJSON struct {
	HeaderPath  string           `json:"header_path,omitempty"`
	Macro       string           `json:"macro"`
	Descriptor  model.Descriptor `json:"descriptor"`
	Changed     bool             `json:"changed"`
	DryRun      bool             `json:"dry_run"`
	Content     string           `json:"content"`
	GeneratedAt string           `json:"generated_at"`
}

// OutputResultJSON writes a generation result as JSON.
func OutputResultJSON(w io.Writer, result model.GenerateResult) error {
	return printJSON(w, BuildResult(result))
}

// BuildResult builds the result JSON model.
func BuildResult(result model.GenerateResult) ResultJSON {
	return ResultJSON{
		HeaderPath:  result.HeaderPath,
		Macro:       result.Macro,
		Descriptor:  result.Descriptor,
		Changed:     result.Changed,
		DryRun:      result.DryRun,
		Content:     result.Content,
		GeneratedAt: result.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

// OutputHistoryJSON writes stored generations as a JSON array.
func OutputHistoryJSON(w io.Writer, generations []storage.Generation) error {
	if generations == nil {
		generations = []storage.Generation{}
	}
	return printJSON(w, generations)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
