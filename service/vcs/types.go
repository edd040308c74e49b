package vcs

import (
	"context"
	"errors"
	"time"

	"github.com/thirukguru/make-git-version/model"
)

// ErrUnavailable is returned when no version descriptor can be obtained from git:
// git is not installed, the directory is not a work tree, or describe printed nothing.
var ErrUnavailable = errors.New("git version metadata unavailable")

// GitClientAPI runs one git invocation in dir and returns its standard output.
type GitClientAPI interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

type service struct {
	client  GitClientAPI
	timeout time.Duration
}

// Service is the interface for the git descriptor service.
type Service interface {
	Describe(ctx context.Context, dir string) (model.Descriptor, error)
}
