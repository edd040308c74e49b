package storage

import (
	"context"
	"time"
)

// Service defines persistence and history queries for header generations.
type Service interface {
	SaveGeneration(ctx context.Context, input GenerationInput) (int64, error)
	GetRecent(sourcePath string, limit int) ([]Generation, error)
	GetLatest(sourcePath string) (*Generation, error)
	Vacuum(ctx context.Context) error
	Reindex(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// GenerationInput is the payload saved for one run of the generator.
type GenerationInput struct {
	GenerationUUID string
	SourcePath     string
	BuildPath      string
	HeaderPath     string
	Macro          string
	Version        string
	VersionSource  string
	Commit         string
	Branch         string
	Dirty          bool
	Changed        bool
	CLIVersion     string
	GeneratedAt    time.Time
}

// Generation is a stored generation record.
type Generation struct {
	GenerationID   int64     `json:"generation_id"`
	GenerationUUID string    `json:"generation_uuid"`
	SourcePath     string    `json:"source_path"`
	BuildPath      string    `json:"build_path"`
	HeaderPath     string    `json:"header_path"`
	Macro          string    `json:"macro"`
	Version        string    `json:"version"`
	VersionSource  string    `json:"version_source"`
	Commit         string    `json:"commit,omitempty"`
	Branch         string    `json:"branch,omitempty"`
	Dirty          bool      `json:"dirty"`
	Changed        bool      `json:"changed"`
	CLIVersion     string    `json:"cli_version"`
	GeneratedAt    time.Time `json:"generated_at"`
}
