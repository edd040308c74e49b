package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/config"
	"github.com/thirukguru/make-git-version/service/orchestrator"
	"github.com/thirukguru/make-git-version/service/output"
	"github.com/thirukguru/make-git-version/service/resolver"
	"github.com/thirukguru/make-git-version/service/storage"
	"github.com/thirukguru/make-git-version/service/vcs"
	"github.com/thirukguru/make-git-version/shared/ansi"
	"github.com/thirukguru/make-git-version/shared/spinner"
)

func runGenerate(ctx context.Context, flags model.Flags, versionInfo model.VersionInfo) error {
	cfg, err := config.NewService().Load(flags)
	if err != nil {
		return err
	}
	if cfg.Output == string(output.FormatTable) {
		ansi.EnableANSI(os.Stdout)
	}

	var storageService storage.Service
	if cfg.Store && !flags.DryRun {
		storageService, err = storage.NewService(cfg.DBPath)
		if err != nil {
			log.WithError(err).Warn("generation history disabled")
		} else {
			defer storageService.Close()
		}
	}

	resolverService := resolver.NewService(vcs.NewService(cfg.GitTimeout), nil, cfg.UTC)
	orchestratorService := orchestrator.NewService(
		resolverService,
		output.NewService(cfg.Output),
		storageService,
		versionInfo,
	)

	ansi.EnableANSI(os.Stderr)
	spinner.StartSpinner("Resolving git version...")
	defer spinner.StopSpinner()

	return orchestratorService.Orchestrate(ctx, orchestrator.Request{
		SourcePath: flags.SourcePath,
		BuildPath:  flags.BuildPath,
		HeaderName: cfg.HeaderName,
		Subdir:     cfg.Subdir,
		Macro:      cfg.Macro,
		DryRun:     flags.DryRun,
		Force:      flags.Force,
		Store:      cfg.Store,
	})
}
