package orchestrator

import (
	"context"
	"time"

	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/output"
	"github.com/thirukguru/make-git-version/service/resolver"
	"github.com/thirukguru/make-git-version/service/storage"
)

// Request describes one header generation.
type Request struct {
	SourcePath string
	BuildPath  string
	HeaderName string
	Subdir     string
	Macro      string
	DryRun     bool
	Force      bool
	Store      bool
}

type service struct {
	resolverService resolver.Service
	outputService   output.Service
	storageService  storage.Service
	versionInfo     model.VersionInfo
	now             func() time.Time
}

// Service runs the generation workflow.
type Service interface {
	Orchestrate(ctx context.Context, req Request) error
	Generate(ctx context.Context, req Request) (model.GenerateResult, error)
}
