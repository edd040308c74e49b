package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
	"github.com/thirukguru/make-git-version/model"
)

var cIdentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewService creates a new config service.
func NewService() Service {
	return &service{}
}

// Load merges, from lowest to highest priority: built-in defaults, the JSON config
// file, MAKE_GIT_VERSION_* environment variables and explicitly set flags.
func (s *service) Load(flags model.Flags) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "json"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	path, explicit := configPath(flags)
	if path != "" {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			switch {
			case errors.Is(err, os.ErrNotExist) && explicit:
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			case errors.Is(err, os.ErrNotExist):
				log.WithField("path", path).Debug("no config file in source directory")
			default:
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else {
			log.WithField("path", path).Debug("loaded config file")
		}
	}

	// MAKE_GIT_VERSION_GIT_TIMEOUT -> git_timeout
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyFlags(&cfg, flags)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configPath(flags model.Flags) (string, bool) {
	if p := strings.TrimSpace(flags.ConfigPath); p != "" {
		return p, true
	}
	if strings.TrimSpace(flags.SourcePath) == "" {
		return "", false
	}
	return filepath.Join(flags.SourcePath, DefaultFilename), false
}

func applyFlags(cfg *Config, flags model.Flags) {
	if flags.IsSet("header") {
		cfg.HeaderName = flags.HeaderName
	}
	if flags.IsSet("subdir") {
		cfg.Subdir = flags.Subdir
	}
	if flags.IsSet("macro") {
		cfg.Macro = flags.Macro
	}
	if flags.IsSet("output") {
		cfg.Output = flags.Output
	}
	if flags.IsSet("store") {
		cfg.Store = flags.Store
	}
	if flags.IsSet("db-path") {
		cfg.DBPath = flags.DBPath
	}
	if flags.IsSet("utc") {
		cfg.UTC = flags.UTC
	}
	if flags.IsSet("git-timeout") {
		cfg.GitTimeout = flags.GitTimeout
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cident", func(fl validator.FieldLevel) bool {
		return cIdentPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("basename", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
	})
	_ = v.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		if p == "" {
			return true
		}
		if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
			return false
		}
		for _, part := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
			if part == ".." {
				return false
			}
		}
		return true
	})
	return v
}

func validate(cfg Config) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "cident":
		return fmt.Sprintf("%s %q is not a valid C identifier", fe.Field(), fe.Value())
	case "basename":
		return fmt.Sprintf("%s %q must be a plain file name", fe.Field(), fe.Value())
	case "relpath":
		return fmt.Sprintf("%s %q must be a relative path inside the build directory", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s %q must be one of: %s", fe.Field(), fe.Value(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
