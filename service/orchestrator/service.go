// Package orchestrator ties version resolution, header writing, history and
// output together into the pre-build workflow.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/header"
	"github.com/thirukguru/make-git-version/service/output"
	"github.com/thirukguru/make-git-version/service/resolver"
	"github.com/thirukguru/make-git-version/service/storage"
)

// NewService creates a new orchestrator. storageService may be nil when history
// is not recorded.
func NewService(
	resolverService resolver.Service,
	outputService output.Service,
	storageService storage.Service,
	versionInfo model.VersionInfo,
) Service {
	return &service{
		resolverService: resolverService,
		outputService:   outputService,
		storageService:  storageService,
		versionInfo:     versionInfo,
		now:             time.Now,
	}
}

// Orchestrate generates the header and renders the result.
func (s *service) Orchestrate(ctx context.Context, req Request) error {
	result, err := s.Generate(ctx, req)
	if err != nil {
		s.outputService.StopSpinner()
		return err
	}
	return s.outputService.RenderResult(result)
}

// Generate resolves the version and writes the header. Nothing is written when
// the source directory cannot be used.
func (s *service) Generate(ctx context.Context, req Request) (model.GenerateResult, error) {
	desc, err := s.resolverService.Resolve(ctx, req.SourcePath)
	if err != nil {
		return model.GenerateResult{}, err
	}

	result := model.GenerateResult{
		Macro:       req.Macro,
		Descriptor:  desc,
		DryRun:      req.DryRun,
		Content:     header.Render(req.Macro, desc.Value),
		GeneratedAt: s.now(),
	}
	if req.BuildPath != "" {
		result.HeaderPath = header.Path(req.BuildPath, req.Subdir, req.HeaderName)
	}

	if !req.DryRun {
		result.Changed, err = header.Write(result.HeaderPath, result.Content, req.Force)
		if err != nil {
			return model.GenerateResult{}, fmt.Errorf("failed to write %s: %w", result.HeaderPath, err)
		}
		log.WithFields(log.Fields{
			"path":    result.HeaderPath,
			"version": desc.Value,
			"changed": result.Changed,
		}).Debug("header generated")
	}

	if err := s.persistIfEnabled(ctx, req, result); err != nil {
		// History is auxiliary; a broken database must not fail the firmware build.
		log.WithError(err).Warn("failed to record generation history")
	}

	return result, nil
}
