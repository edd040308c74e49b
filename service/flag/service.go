package flag

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/thirukguru/make-git-version/model"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags.
//
// The build tool passes two positional arguments: the sketch source path and the
// build path, in that order.
func (s *service) GetParsedFlags() (model.Flags, error) {
	header := pflag.String("header", "git-version.h", "Name of the generated header file")
	subdir := pflag.String("subdir", "sketch", "Directory under the build path that receives the header")
	macro := pflag.String("macro", "GIT_VERSION", "Name of the macro defined in the header")
	output := pflag.StringP("output", "o", "text", "Output format (text, json, or table)")
	configPath := pflag.String("config", "", "Path to a JSON config file (default <source>/make-git-version.json)")
	store := pflag.Bool("store", false, "Record the generation in the local SQLite history")
	dbPath := pflag.String("db-path", "", "Custom SQLite database path (default ~/.make-git-version/history.db)")
	dryRun := pflag.Bool("dry-run", false, "Print the header instead of writing it")
	force := pflag.Bool("force", false, "Rewrite the header even when its content is unchanged")
	verbose := pflag.Bool("verbose", false, "Enable debug logging on stderr")
	utc := pflag.Bool("utc", false, "Use the UTC date for the fallback version")
	gitTimeout := pflag.Duration("git-timeout", 5*time.Second, "Timeout for each git invocation")
	version := pflag.BoolP("version", "v", false, "Show version information")

	pflag.Parse()

	changed := map[string]bool{}
	pflag.Visit(func(f *pflag.Flag) {
		changed[f.Name] = true
	})

	flags := model.Flags{
		HeaderName: *header,
		Subdir:     *subdir,
		Macro:      *macro,
		Output:     strings.ToLower(strings.TrimSpace(*output)),
		ConfigPath: *configPath,
		Store:      *store,
		DBPath:     *dbPath,
		DryRun:     *dryRun,
		Force:      *force,
		Verbose:    *verbose,
		UTC:        *utc,
		GitTimeout: *gitTimeout,
		Version:    *version,
		Changed:    changed,
	}
	if flags.Version {
		return flags, nil
	}

	args := pflag.Args()
	if len(args) > 0 {
		flags.SourcePath = strings.TrimSpace(args[0])
	}
	if len(args) > 1 {
		flags.BuildPath = strings.TrimSpace(args[1])
	}
	if len(args) > 2 {
		return flags, fmt.Errorf("unexpected arguments: %s", strings.Join(args[2:], " "))
	}

	if flags.SourcePath == "" {
		return flags, ErrMissingSource
	}
	if flags.BuildPath == "" && !flags.DryRun {
		return flags, ErrMissingBuild
	}

	return flags, nil
}
