package model

import "time"

// VersionSource tells where a version descriptor came from.
type VersionSource string

const (
	SourceGit  VersionSource = "git"
	SourceDate VersionSource = "date"
)

// Descriptor is the resolved build identifier written into the header.
type Descriptor struct {
	Value  string        `json:"value"`
	Source VersionSource `json:"source"`
	Commit string        `json:"commit,omitempty"`
	Branch string        `json:"branch,omitempty"`
	Dirty  bool          `json:"dirty"`
}

// GenerateResult describes one header generation.
type GenerateResult struct {
	HeaderPath  string     `json:"header_path"`
	Macro       string     `json:"macro"`
	Descriptor  Descriptor `json:"descriptor"`
	Changed     bool       `json:"changed"`
	DryRun      bool       `json:"dry_run"`
	Content     string     `json:"content"`
	GeneratedAt time.Time  `json:"generated_at"`
}
