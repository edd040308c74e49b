package orchestrator

import (
	"context"

	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/storage"
)

func (s *service) persistIfEnabled(ctx context.Context, req Request, result model.GenerateResult) error {
	if s.storageService == nil || !req.Store || req.DryRun {
		return nil
	}

	_, err := s.storageService.SaveGeneration(ctx, storage.GenerationInput{
		SourcePath:    req.SourcePath,
		BuildPath:     req.BuildPath,
		HeaderPath:    result.HeaderPath,
		Macro:         result.Macro,
		Version:       result.Descriptor.Value,
		VersionSource: string(result.Descriptor.Source),
		Commit:        result.Descriptor.Commit,
		Branch:        result.Descriptor.Branch,
		Dirty:         result.Descriptor.Dirty,
		Changed:       result.Changed,
		CLIVersion:    s.versionInfo.Version,
		GeneratedAt:   result.GeneratedAt,
	})
	return err
}
