// Package project loads and writes the per-project tmplsync.toml
// configuration file.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/okrause/tmplsync/pkg/version"
)

const FileName = "tmplsync.toml"

var ErrNotConfigured = errors.New("project is not configured")

// Config is the on-disk project configuration.
type Config struct {
	Tmplsync Tmplsync `toml:"tmplsync"` // application metadata
	Template Template `toml:"template"` // where template files come from
	Setup    Setup    `toml:"setup"`    // environment bootstrap
}

type Tmplsync struct {
	Version string `toml:"version"`
}

// Template describes the remote template repository and the manifest's fixed
// location inside it.
type Template struct {
	URL      string `toml:"url"`
	Ref      string `toml:"ref"`
	Manifest string `toml:"manifest"`
}

// Setup configures the environment bootstrap: the package manager to ensure,
// the packages to install through it, and lines to keep in the shell profile.
type Setup struct {
	Manager      string   `toml:"manager"`
	Packages     []string `toml:"packages"`
	ProfileLines []string `toml:"profile_lines"`
}

func Default() Config {
	return Config{
		Tmplsync: Tmplsync{
			Version: version.Version,
		},
		Template: Template{
			Ref:      "main",
			Manifest: ".syncfiles",
		},
	}
}

// Load decodes the config at path and applies defaults for omitted fields.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s missing (run tmplsync init)", ErrNotConfigured, path)
		}
		return Config{}, fmt.Errorf("stat %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := version.EnsureCompatible(cfg.Tmplsync.Version); err != nil {
		return Config{}, fmt.Errorf("unsupported config version %q: %w", cfg.Tmplsync.Version, err)
	}

	if strings.TrimSpace(cfg.Template.Manifest) == "" {
		cfg.Template.Manifest = ".syncfiles"
	}
	if strings.TrimSpace(cfg.Template.Ref) == "" {
		cfg.Template.Ref = "main"
	}

	return cfg, nil
}

// Save writes cfg to path atomically via a temporary sibling file.
func Save(path string, cfg Config) error {
	if cfg.Tmplsync.Version == "" {
		cfg.Tmplsync.Version = version.Version
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	tp := path + ".tmp"
	f, err := os.OpenFile(tp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tp, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = os.Remove(tp)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tp)
		return fmt.Errorf("close %s: %w", tp, err)
	}

	if err := os.Rename(tp, path); err != nil {
		_ = os.Remove(tp)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
