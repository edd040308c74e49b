package flag

import (
	"errors"

	"github.com/thirukguru/make-git-version/model"
)

var (
	// ErrMissingSource is returned when the sketch source path argument is absent.
	ErrMissingSource = errors.New("source path argument is required")
	// ErrMissingBuild is returned when the build path argument is absent.
	ErrMissingBuild = errors.New("build path argument is required")
)

type service struct{}

// Service is the interface for CLI flag service.
type Service interface {
	GetParsedFlags() (model.Flags, error)
}
