package hook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "default command",
			opts: Options{Index: 1},
			want: `hooks.sketch.prebuild.1.pattern=make-git-version "{build.source.path}" "{build.path}"`,
		},
		{
			name: "recipe prefix and slot",
			opts: Options{Command: "/usr/local/bin/make-git-version", Index: 3, Recipe: true},
			want: `recipe.hooks.sketch.prebuild.3.pattern=/usr/local/bin/make-git-version "{build.source.path}" "{build.path}"`,
		},
		{
			name: "command with spaces is quoted",
			opts: Options{Command: `C:\Program Files\mgv\make-git-version.exe`, Index: 1},
			want: `hooks.sketch.prebuild.1.pattern="C:\Program Files\mgv\make-git-version.exe" "{build.source.path}" "{build.path}"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pattern(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Pattern(Options{Index: 0})
	assert.Error(t, err)
}

func TestInstallCreatesFile(t *testing.T) {
	dir := t.TempDir()

	changed, err := Install(dir, Options{Index: 1})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(filepath.Join(dir, LocalPlatformFile))
	require.NoError(t, err)
	assert.Equal(t, `hooks.sketch.prebuild.1.pattern=make-git-version "{build.source.path}" "{build.path}"`+"\n", string(got))

	changed, err = Install(dir, Options{Index: 1})
	require.NoError(t, err)
	assert.False(t, changed, "second install must be a no-op")
}

func TestInstallReplacesAndPreserves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LocalPlatformFile)
	existing := "# local overrides\n" +
		"compiler.cpp.extra_flags=-DDEBUG\n" +
		"hooks.sketch.prebuild.1.pattern=old-tool {build.path}\n" +
		"hooks.sketch.prebuild.2.pattern=other-tool\n" +
		"hooks.sketch.prebuild.1.pattern=stale-duplicate\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	changed, err := Install(dir, Options{Index: 1})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# local overrides\n"+
		"compiler.cpp.extra_flags=-DDEBUG\n"+
		`hooks.sketch.prebuild.1.pattern=make-git-version "{build.source.path}" "{build.path}"`+"\n"+
		"hooks.sketch.prebuild.2.pattern=other-tool\n", string(got))
}

func TestInstallAppendsToFileWithoutTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LocalPlatformFile)
	require.NoError(t, os.WriteFile(path, []byte("name=custom"), 0o644))

	changed, err := Install(dir, Options{Index: 2})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name=custom\n"+
		`hooks.sketch.prebuild.2.pattern=make-git-version "{build.source.path}" "{build.path}"`+"\n", string(got))
}

func TestInstallMissingPlatformDir(t *testing.T) {
	_, err := Install(filepath.Join(t.TempDir(), "missing"), Options{Index: 1})
	assert.Error(t, err)
}
