package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/thirukguru/make-git-version/model"
	"github.com/thirukguru/make-git-version/service/vcs"
)

// DateLayout is the ISO-8601 calendar date used when git metadata is unavailable.
const DateLayout = "2006-01-02"

var (
	// ErrMissingSource is returned when no source directory was given.
	ErrMissingSource = errors.New("source directory is required")
	// ErrNotDirectory is returned when the source path exists but is not a directory.
	ErrNotDirectory = errors.New("source path is not a directory")
)

// Clock returns the current time.
type Clock func() time.Time

type service struct {
	vcs   vcs.Service
	clock Clock
	utc   bool
}

// Service resolves the version descriptor of a sketch source directory.
type Service interface {
	Resolve(ctx context.Context, sourceDir string) (model.Descriptor, error)
}
