// Package fetch materializes a template repository into a local staging
// directory that the sync engine can read from.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/okrause/tmplsync/pkg/utils/fileutils"
)

const envStagingDir = "TMPLSYNC_STAGING_DIR"

// Options selects what to fetch. Ref may name a branch, a tag, or a commit;
// when empty, the remote's default branch is used.
type Options struct {
	URL string
	Ref string
}

// Staging is a materialized template checkout. It must be closed: Close
// removes the whole staging directory, and callers are expected to defer it
// so the tree is cleaned up on every exit path.
type Staging struct {
	Dir    string
	Commit string
}

// Path resolves a slash-separated relative path inside the staging tree.
func (s *Staging) Path(rel string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(rel))
}

func (s *Staging) Close() error {
	if s == nil || s.Dir == "" {
		return nil
	}
	dir := s.Dir
	s.Dir = ""
	return fileutils.RemovePath(dir)
}

// Clone fetches opts.URL into a fresh staging directory and checks out
// opts.Ref. On failure the partially created directory is removed before
// returning.
func Clone(ctx context.Context, opts Options, logger *slog.Logger) (*Staging, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if strings.TrimSpace(opts.URL) == "" {
		return nil, fmt.Errorf("template url is empty")
	}

	dir, err := os.MkdirTemp(stagingParent(), "staging-")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	staging, err := cloneInto(ctx, dir, opts, logger)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	return staging, nil
}

func cloneInto(ctx context.Context, dir string, opts Options, logger *slog.Logger) (*Staging, error) {
	logger.Debug("cloning template repository", "url", opts.URL, "ref", opts.Ref, "dir", dir)

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL: opts.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", opts.URL, err)
	}

	if ref := strings.TrimSpace(opts.Ref); ref != "" {
		if err := checkout(repo, ref); err != nil {
			return nil, err
		}
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD of %s: %w", opts.URL, err)
	}

	logger.Debug("template repository ready", "commit", head.Hash().String())

	return &Staging{
		Dir:    dir,
		Commit: head.Hash().String(),
	}, nil
}

// checkout moves the worktree to ref, trying the remote branch form first so
// branch names win over identically named files, then the ref as given
// (tags, commit hashes, local refs).
func checkout(repo *git.Repository, ref string) error {
	hash, err := repo.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + ref))
	if err != nil {
		hash, err = repo.ResolveRevision(plumbing.Revision(ref))
	}
	if err != nil {
		return fmt.Errorf("resolve ref %q: %w", ref, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}

	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return fmt.Errorf("checkout %q (%s): %w", ref, hash, err)
	}

	return nil
}

func stagingParent() string {
	if custom := strings.TrimSpace(os.Getenv(envStagingDir)); custom != "" {
		if err := os.MkdirAll(custom, 0o755); err == nil {
			return custom
		}
	}

	parent := filepath.Join(xdg.CacheHome, "tmplsync")
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return os.TempDir()
	}
	return parent
}
