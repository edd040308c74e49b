// Package config layers defaults, a JSON config file, environment variables and
// explicit command line flags into the settings of a generation run.
package config

import (
	"errors"
	"time"

	"github.com/thirukguru/make-git-version/model"
)

const (
	// DefaultFilename is looked up inside the sketch source directory when no
	// explicit config path is given.
	DefaultFilename = "make-git-version.json"

	// EnvPrefix prefixes every environment variable read by the loader.
	EnvPrefix = "MAKE_GIT_VERSION_"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested config file is missing.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidConfig is returned when the merged configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the merged configuration of a generation run.
type Config struct {
	HeaderName string        `json:"header" validate:"required,basename"`
	Subdir     string        `json:"subdir" validate:"relpath"`
	Macro      string        `json:"macro" validate:"required,cident"`
	Output     string        `json:"output" validate:"oneof=text json table"`
	Store      bool          `json:"store"`
	DBPath     string        `json:"db_path"`
	UTC        bool          `json:"utc"`
	GitTimeout time.Duration `json:"git_timeout" validate:"gt=0"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		HeaderName: "git-version.h",
		Subdir:     "sketch",
		Macro:      "GIT_VERSION",
		Output:     "text",
		GitTimeout: 5 * time.Second,
	}
}

type service struct{}

// Service loads the configuration of a run.
type Service interface {
	Load(flags model.Flags) (*Config, error)
}
