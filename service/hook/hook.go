// Package hook wires the generator into an Arduino platform as a sketch pre-build hook.
package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// LocalPlatformFile is read by the Arduino tooling next to platform.txt and
	// overrides or extends it.
	LocalPlatformFile = "platform.local.txt"

	// DefaultCommand is the executable name the hook invokes.
	DefaultCommand = "make-git-version"

	keyFormat = "hooks.sketch.prebuild.%d.pattern"
	args      = `"{build.source.path}" "{build.path}"`
)

// Options selects the hook slot and command.
type Options struct {
	Command string
	Index   int
	// Recipe prefixes the key with "recipe.", the form newer platform files use.
	Recipe bool
}

// Key returns the platform property name for the hook slot.
func Key(opts Options) string {
	key := fmt.Sprintf(keyFormat, opts.Index)
	if opts.Recipe {
		key = "recipe." + key
	}
	return key
}

// Pattern renders the full platform property line, e.g.
//
//	hooks.sketch.prebuild.1.pattern=make-git-version "{build.source.path}" "{build.path}"
func Pattern(opts Options) (string, error) {
	if opts.Index < 1 {
		return "", errors.New("hook index must be >= 1")
	}
	cmd := strings.TrimSpace(opts.Command)
	if cmd == "" {
		cmd = DefaultCommand
	}
	if strings.ContainsAny(cmd, " \t") && !strings.HasPrefix(cmd, `"`) {
		cmd = `"` + cmd + `"`
	}
	return fmt.Sprintf("%s=%s %s", Key(opts), cmd, args), nil
}

// Install writes the hook line into platformDir/platform.local.txt. A line with the
// same key is replaced and every other line is preserved. It reports whether the
// file changed.
func Install(platformDir string, opts Options) (bool, error) {
	line, err := Pattern(opts)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(platformDir)
	if err != nil {
		return false, fmt.Errorf("failed to access platform directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("platform path is not a directory: %s", platformDir)
	}

	path := filepath.Join(platformDir, LocalPlatformFile)
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, changed := merge(string(existing), Key(opts), line)
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

func merge(content, key, line string) (string, bool) {
	if content == "" {
		return line + "\n", true
	}

	var (
		out      []string
		replaced bool
		changed  bool
	)
	for _, l := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		k, _, ok := strings.Cut(strings.TrimSpace(l), "=")
		if !ok || strings.TrimSpace(k) != key {
			out = append(out, l)
			continue
		}
		if replaced {
			// A later duplicate would override the replacement.
			changed = true
			continue
		}
		if strings.TrimRight(l, "\r") != line {
			changed = true
		}
		out = append(out, line)
		replaced = true
	}
	if !replaced {
		out = append(out, line)
		changed = true
	}
	if !changed {
		return content, false
	}
	return strings.Join(out, "\n") + "\n", true
}
