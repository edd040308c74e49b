// Package main is the entry point for the make-git-version pre-build hook.
//
// Wired into an Arduino platform with
//
//	hooks.sketch.prebuild.1.pattern=make-git-version "{build.source.path}" "{build.path}"
//
// it writes {build.path}/sketch/git-version.h defining GIT_VERSION as the output of
// `git describe --tags --always --dirty`, or the build date outside a git work tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/flag"
	"github.com/thirukguru/make-git-version/service/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configureLogging(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "show", "init", "hook", "history", "db":
			return runCommand(ctx, os.Args[1], os.Args[2:], os.Stdout)
		}
	}

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if flags.Version {
		versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}
		return output.NewService(flags.Output).RenderVersion(versionInfo)
	}
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	configureLogging(flags.Verbose)
	return runGenerate(ctx, flags, model.VersionInfo{Version: version, Commit: commit, Date: date})
}

// configureLogging sends diagnostics to stderr. Stdout is reserved for results.
func configureLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
		return
	}
	log.SetLevel(log.WarnLevel)
}
