package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/make-git-version/model"
)

type fakeClient struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	dirs    []string
}

func (f *fakeClient) Run(_ context.Context, dir string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirs = append(f.dirs, dir)
	key := strings.Join(args, " ")
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.outputs[key], nil
}

func TestDescribe(t *testing.T) {
	client := &fakeClient{outputs: map[string]string{
		"describe --tags --always --dirty": "v1.4.0-3-g1a2b3c4-dirty\n",
		"rev-parse HEAD":                   "1a2b3c4d5e6f\n",
		"rev-parse --abbrev-ref HEAD":      "main\n",
	}}

	desc, err := NewServiceWithClient(client, time.Second).Describe(context.Background(), "/src/blink")
	require.NoError(t, err)
	assert.Equal(t, model.Descriptor{
		Value:  "v1.4.0-3-g1a2b3c4-dirty",
		Source: model.SourceGit,
		Commit: "1a2b3c4d5e6f",
		Branch: "main",
		Dirty:  true,
	}, desc)
	for _, d := range client.dirs {
		assert.Equal(t, "/src/blink", d)
	}
}

func TestDescribeDetachedHead(t *testing.T) {
	client := &fakeClient{outputs: map[string]string{
		"describe --tags --always --dirty": "1a2b3c4",
		"rev-parse --abbrev-ref HEAD":      "HEAD",
	}}

	desc, err := NewServiceWithClient(client, time.Second).Describe(context.Background(), "/src")
	require.NoError(t, err)
	assert.Equal(t, "1a2b3c4", desc.Value)
	assert.Empty(t, desc.Branch)
	assert.False(t, desc.Dirty)
}

func TestDescribeFailures(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{
			name: "not a repository",
			client: &fakeClient{errs: map[string]error{
				"describe --tags --always --dirty": errors.New("fatal: not a git repository"),
			}},
		},
		{
			name:   "empty output",
			client: &fakeClient{outputs: map[string]string{"describe --tags --always --dirty": "  \n"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewServiceWithClient(tt.client, time.Second).Describe(context.Background(), "/src")
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestDescribeCommitFailureIsTolerated(t *testing.T) {
	client := &fakeClient{
		outputs: map[string]string{"describe --tags --always --dirty": "v2.0.0"},
		errs:    map[string]error{"rev-parse HEAD": errors.New("boom")},
	}

	desc, err := NewServiceWithClient(client, time.Second).Describe(context.Background(), "/src")
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", desc.Value)
	assert.Empty(t, desc.Commit)
}

func TestDescribeMissingBinary(t *testing.T) {
	svc := NewServiceWithClient(&execClient{binary: "git-binary-that-does-not-exist"}, time.Second)
	_, err := svc.Describe(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func gitAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_CONFIG_NOSYSTEM=1", "HOME="+dir,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func TestDescribeRealRepository(t *testing.T) {
	gitAvailable(t)

	dir := t.TempDir()
	git(t, dir, "init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blink.ino"), []byte("void setup() {}\n"), 0o644))
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "initial")
	git(t, dir, "tag", "v0.1.0")

	svc := NewService(10 * time.Second)
	desc, err := svc.Describe(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0", desc.Value)
	assert.False(t, desc.Dirty)
	assert.Len(t, desc.Commit, 40)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "blink.ino"), []byte("void loop() {}\n"), 0o644))
	desc, err = svc.Describe(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0-dirty", desc.Value)
	assert.True(t, desc.Dirty)
}

func TestDescribeOutsideRepository(t *testing.T) {
	gitAvailable(t)
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(t.TempDir()))

	_, err := NewService(10 * time.Second).Describe(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrUnavailable)
}
