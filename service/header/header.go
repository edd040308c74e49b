// Package header renders, writes and reads the one-line C header that carries the
// version macro into a sketch build.
package header

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNoDefine is returned by Read when the file holds no string macro definition.
	ErrNoDefine = errors.New("no string macro definition found")
	// ErrMultipleDefines is returned by Read when the file defines more than one macro.
	ErrMultipleDefines = errors.New("header defines more than one macro")
)

var definePattern = regexp.MustCompile(`^\s*#\s*define\s+([A-Za-z_][A-Za-z0-9_]*)\s+"((?:[^"\\]|\\.)*)"\s*$`)

// Render returns the header text: a single #define of macro to the quoted value.
func Render(macro, value string) string {
	return fmt.Sprintf("#define %s \"%s\"\n", macro, escape(value))
}

// escape produces a C string literal body. Control bytes use three-digit octal
// escapes, which, unlike \x, cannot swallow following characters.
func escape(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == '"':
			b.WriteString(`\"`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, `\%03o`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Path joins the header location below the build directory. An empty subdir puts
// the header directly in buildPath.
func Path(buildPath, subdir, name string) string {
	return filepath.Join(buildPath, subdir, name)
}

// Write stores content at path. It leaves an identical existing file untouched,
// so its modification time does not trigger a rebuild, unless force is set. The
// replacement is atomic: readers see either the old or the new header.
func Write(path, content string, force bool) (bool, error) {
	if !force {
		existing, err := os.ReadFile(path)
		if err == nil && bytes.Equal(existing, []byte(content)) {
			return false, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("failed to read existing header: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create header directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("failed to create temp header: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("failed to write header: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("failed to set header mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("failed to close header: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, fmt.Errorf("failed to install header: %w", err)
	}
	return true, nil
}

// Read parses a generated header and returns its macro name and unescaped value.
// Blank lines and comments are ignored.
func Read(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	var macro, value string
	found := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		m := definePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		found++
		if found > 1 {
			return "", "", fmt.Errorf("%w: %s", ErrMultipleDefines, path)
		}
		v, err := strconv.Unquote(`"` + m[2] + `"`)
		if err != nil {
			return "", "", fmt.Errorf("malformed string literal in %s: %w", path, err)
		}
		macro, value = m[1], v
	}
	if found == 0 {
		return "", "", fmt.Errorf("%w: %s", ErrNoDefine, path)
	}
	return macro, value, nil
}

// Placeholder creates an empty header in the sketch directory so the first
// compilation, before any build-path header exists, still finds the include.
// An existing file is never modified.
func Placeholder(sketchDir, name string) (bool, error) {
	info, err := os.Stat(sketchDir)
	if err != nil {
		return false, fmt.Errorf("failed to access sketch directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("sketch path is not a directory: %s", sketchDir)
	}

	f, err := os.OpenFile(filepath.Join(sketchDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create placeholder header: %w", err)
	}
	return true, f.Close()
}
