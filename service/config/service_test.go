package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/make-git-version/model"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewService().Load(model.Flags{SourcePath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoadSourceDirConfigFile(t *testing.T) {
	src := t.TempDir()
	writeConfig(t, src, `{"macro": "FW_VERSION", "subdir": "", "git_timeout": "750ms", "utc": true}`)

	cfg, err := NewService().Load(model.Flags{SourcePath: src})
	require.NoError(t, err)
	assert.Equal(t, "FW_VERSION", cfg.Macro)
	assert.Equal(t, "", cfg.Subdir)
	assert.Equal(t, 750*time.Millisecond, cfg.GitTimeout)
	assert.True(t, cfg.UTC)
	assert.Equal(t, "git-version.h", cfg.HeaderName)
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	_, err := NewService().Load(model.Flags{
		SourcePath: t.TempDir(),
		ConfigPath: filepath.Join(t.TempDir(), "nope.json"),
	})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	src := t.TempDir()
	writeConfig(t, src, `{"macro": "GIT_VERSION", "colour": "red"}`)

	_, err := NewService().Load(model.Flags{SourcePath: src})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	src := t.TempDir()
	writeConfig(t, src, `{"macro": "FROM_FILE", "output": "table"}`)
	t.Setenv("MAKE_GIT_VERSION_MACRO", "FROM_ENV")
	t.Setenv("MAKE_GIT_VERSION_STORE", "true")

	cfg, err := NewService().Load(model.Flags{SourcePath: src})
	require.NoError(t, err)
	assert.Equal(t, "FROM_ENV", cfg.Macro)
	assert.Equal(t, "table", cfg.Output)
	assert.True(t, cfg.Store)
}

func TestLoadExplicitFlagsWin(t *testing.T) {
	src := t.TempDir()
	writeConfig(t, src, `{"macro": "FROM_FILE", "header": "file.h"}`)
	t.Setenv("MAKE_GIT_VERSION_MACRO", "FROM_ENV")

	flags := model.Flags{
		SourcePath: src,
		Macro:      "FROM_FLAG",
		HeaderName: "ignored.h",
		GitTimeout: time.Second,
		Changed:    map[string]bool{"macro": true, "git-timeout": true},
	}
	cfg, err := NewService().Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "FROM_FLAG", cfg.Macro)
	assert.Equal(t, "file.h", cfg.HeaderName)
	assert.Equal(t, time.Second, cfg.GitTimeout)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		flags model.Flags
	}{
		{
			name:  "macro not an identifier",
			flags: model.Flags{Macro: "9VERSION", Changed: map[string]bool{"macro": true}},
		},
		{
			name:  "macro with spaces",
			flags: model.Flags{Macro: "GIT VERSION", Changed: map[string]bool{"macro": true}},
		},
		{
			name:  "header with directory",
			flags: model.Flags{HeaderName: "../git-version.h", Changed: map[string]bool{"header": true}},
		},
		{
			name:  "empty header",
			flags: model.Flags{HeaderName: "", Changed: map[string]bool{"header": true}},
		},
		{
			name:  "absolute subdir",
			flags: model.Flags{Subdir: "/etc", Changed: map[string]bool{"subdir": true}},
		},
		{
			name:  "escaping subdir",
			flags: model.Flags{Subdir: "sketch/../../x", Changed: map[string]bool{"subdir": true}},
		},
		{
			name:  "unknown output",
			flags: model.Flags{Output: "yaml", Changed: map[string]bool{"output": true}},
		},
		{
			name:  "zero timeout",
			flags: model.Flags{GitTimeout: 0, Changed: map[string]bool{"git-timeout": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.flags.SourcePath = t.TempDir()
			_, err := NewService().Load(tt.flags)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
