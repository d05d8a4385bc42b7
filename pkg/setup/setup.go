// Package setup bootstraps the local environment for a project: it verifies
// the configured package manager, installs the configured packages, and
// keeps the required lines in the user's shell profile.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/okrause/tmplsync/pkg/execx"
	"github.com/okrause/tmplsync/pkg/project"
	"github.com/okrause/tmplsync/pkg/shellrc"
)

// Result summarizes what a bootstrap run did (or, in dry-run mode, would do).
type Result struct {
	Manager           string
	InstalledPackages []string
	AppendedLines     []string
	DryRun            bool
}

// Bootstrap runs the environment setup described by cfg against the profile
// at profilePath. In dry-run mode nothing is executed or written; the Result
// reports what would change.
func Bootstrap(ctx context.Context, runner execx.Runner, cfg project.Setup, profilePath string, dryRun bool, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	res := Result{
		Manager: strings.TrimSpace(cfg.Manager),
		DryRun:  dryRun,
	}

	if len(cfg.Packages) > 0 {
		if res.Manager == "" {
			return Result{}, fmt.Errorf("setup.packages configured but setup.manager is empty")
		}
		if !runner.LookPath(res.Manager) {
			return Result{}, fmt.Errorf("package manager %q not found on PATH", res.Manager)
		}

		for _, pkg := range cfg.Packages {
			pkg = strings.TrimSpace(pkg)
			if pkg == "" {
				continue
			}

			if dryRun {
				logger.Debug("would install package", "manager", res.Manager, "package", pkg)
				res.InstalledPackages = append(res.InstalledPackages, pkg)
				continue
			}

			args := installArgs(res.Manager, pkg)
			logger.Debug("installing package", "manager", res.Manager, "package", pkg)
			out, err := runner.Run(ctx, res.Manager, args...)
			if err != nil {
				return Result{}, fmt.Errorf("run %s %s: %w", res.Manager, strings.Join(args, " "), err)
			}
			if out.ExitCode != 0 {
				return Result{}, fmt.Errorf("%s %s exited with status %d: %s",
					res.Manager, strings.Join(args, " "), out.ExitCode, strings.TrimSpace(out.Stderr))
			}
			res.InstalledPackages = append(res.InstalledPackages, pkg)
		}
	}

	for _, line := range cfg.ProfileLines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if dryRun {
			present, err := shellrc.HasLine(profilePath, line)
			if err != nil {
				return Result{}, err
			}
			if !present {
				res.AppendedLines = append(res.AppendedLines, line)
			}
			continue
		}

		changed, err := shellrc.EnsureLine(profilePath, line)
		if err != nil {
			return Result{}, err
		}
		if changed {
			logger.Debug("appended profile line", "profile", profilePath, "line", line)
			res.AppendedLines = append(res.AppendedLines, line)
		}
	}

	return res, nil
}

// installArgs maps a package manager to its install invocation.
func installArgs(manager, pkg string) []string {
	switch manager {
	case "apt", "apt-get":
		return []string{"install", "-y", pkg}
	case "dnf", "yum":
		return []string{"install", "-y", pkg}
	case "pacman":
		return []string{"-S", "--noconfirm", pkg}
	default: // brew and anything brew-like
		return []string{"install", pkg}
	}
}
