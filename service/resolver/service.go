// Package resolver picks the version string for a build: the git descriptor when
// the sketch lives in a git work tree, the build date otherwise.
package resolver

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/vcs"
)

// NewService creates a resolver. A nil clock uses time.Now.
func NewService(vcsService vcs.Service, clock Clock, utc bool) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{
		vcs:   vcsService,
		clock: clock,
		utc:   utc,
	}
}

// Resolve fails only when sourceDir is absent or unusable. Any git failure falls
// back to the current date.
func (s *service) Resolve(ctx context.Context, sourceDir string) (model.Descriptor, error) {
	if strings.TrimSpace(sourceDir) == "" {
		return model.Descriptor{}, ErrMissingSource
	}
	info, err := os.Stat(sourceDir)
	if err != nil {
		return model.Descriptor{}, fmt.Errorf("failed to access source directory: %w", err)
	}
	if !info.IsDir() {
		return model.Descriptor{}, fmt.Errorf("%w: %s", ErrNotDirectory, sourceDir)
	}

	desc, err := s.vcs.Describe(ctx, sourceDir)
	if err == nil {
		log.WithFields(log.Fields{"version": desc.Value, "commit": desc.Commit}).Debug("resolved git version")
		return desc, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return model.Descriptor{}, ctxErr
	}

	log.WithError(err).Debug("falling back to build date")
	return model.Descriptor{
		Value:  s.today(),
		Source: model.SourceDate,
	}, nil
}

func (s *service) today() string {
	now := s.clock()
	if s.utc {
		now = now.UTC()
	}
	return now.Format(DateLayout)
}
