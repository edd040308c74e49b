package model

import "time"

// Flags represents the command line flags of a header generation run.
type Flags struct {
	SourcePath string
	BuildPath  string
	HeaderName string
	Subdir     string
	Macro      string
	Output     string
	ConfigPath string
	Store      bool
	DBPath     string
	DryRun     bool
	Force      bool
	Verbose    bool
	UTC        bool
	GitTimeout time.Duration
	Version    bool

	// Changed lists the long names of flags given explicitly on the command line.
	Changed map[string]bool
}

// IsSet reports whether the named flag was given explicitly.
func (f Flags) IsSet(name string) bool {
	return f.Changed[name]
}
