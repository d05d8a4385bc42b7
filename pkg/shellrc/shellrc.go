// Package shellrc locates the user's shell profile and keeps required lines
// present in it.
package shellrc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Profile resolves the startup file for the given shell path (the value of
// $SHELL), relative to home. Unknown shells fall back to ~/.profile.
func Profile(shell, home string) string {
	switch filepath.Base(strings.TrimSpace(shell)) {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return filepath.Join(home, ".profile")
	}
}

// DetectProfile resolves the current user's shell profile from $SHELL.
func DetectProfile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return Profile(os.Getenv("SHELL"), home), nil
}

// HasLine reports whether the profile at path already contains line,
// comparing with surrounding whitespace trimmed. A missing profile has no
// lines.
func HasLine(path, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, fmt.Errorf("profile line is empty")
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read profile %s: %w", path, err)
	}

	for _, existing := range strings.Split(string(contents), "\n") {
		if strings.TrimSpace(existing) == line {
			return true, nil
		}
	}
	return false, nil
}

// EnsureLine appends line to the profile at path unless an identical line is
// already present. The operation is idempotent: repeated calls leave the
// file unchanged. Returns true when the file was modified.
func EnsureLine(path, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, fmt.Errorf("profile line is empty")
	}

	present, err := HasLine(path, line)
	if err != nil {
		return false, err
	}
	if present {
		return false, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read profile %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("open profile %s: %w", path, err)
	}
	defer f.Close()

	out := line + "\n"
	if len(contents) > 0 && !strings.HasSuffix(string(contents), "\n") {
		out = "\n" + out
	}
	if _, err := f.WriteString(out); err != nil {
		return false, fmt.Errorf("append to profile %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close profile %s: %w", path, err)
	}

	return true, nil
}
