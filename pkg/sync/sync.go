// Package sync copies manifest-listed files and directories from a
// materialized template tree into a project working tree.
//
// Files are compared byte-for-byte and skipped when identical. Directories
// are treated as opaque bundles: an out-of-date directory entry is replaced
// wholesale, with no per-file merge. The source tree is never mutated, and a
// dry run never mutates the destination.
package sync

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/okrause/tmplsync/pkg/manifest"
	"github.com/okrause/tmplsync/pkg/utils/fileutils"
)

// Engine syncs entries from SourceRoot into DestRoot.
type Engine struct {
	SourceRoot string
	DestRoot   string
	DryRun     bool

	logger *slog.Logger
}

func New(sourceRoot, destRoot string, dryRun bool, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		SourceRoot: sourceRoot,
		DestRoot:   destRoot,
		DryRun:     dryRun,
		logger:     logger,
	}
}

// Run processes every entry in manifest order. Entries are independent: a
// missing source or a failed copy never stops the remaining entries. All
// per-entry I/O failures are joined into the returned error so the caller
// can exit non-zero; the Report is valid either way.
func (e *Engine) Run(entries []manifest.Entry) (Report, error) {
	report := Report{
		Results: make([]Result, 0, len(entries)),
		DryRun:  e.DryRun,
	}

	var errs []error
	for _, entry := range entries {
		src := filepath.Join(e.SourceRoot, filepath.FromSlash(entry.Path))
		dest := filepath.Join(e.DestRoot, filepath.FromSlash(entry.Path))

		var res Result
		if entry.IsDir() {
			res = e.syncDir(entry, src, dest)
		} else {
			res = e.syncFile(entry, src, dest)
		}

		e.logger.Debug("entry processed",
			"path", entry.String(),
			"outcome", string(res.Outcome))

		if res.Outcome == OutcomeUpdated || res.Outcome == OutcomeWouldUpdate {
			report.Updated++
		}
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
		report.Results = append(report.Results, res)
	}

	return report, errors.Join(errs...)
}

func (e *Engine) syncFile(entry manifest.Entry, src, dest string) Result {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Entry: entry, Outcome: OutcomeSourceMissing}
		}
		return failed(entry, fmt.Errorf("stat source %s: %w", src, err))
	}

	same, err := fileutils.SameContents(src, dest)
	if err != nil {
		return failed(entry, err)
	}
	if same {
		return Result{Entry: entry, Outcome: OutcomeUpToDate}
	}

	if e.DryRun {
		return Result{Entry: entry, Outcome: OutcomeWouldUpdate}
	}

	if err := fileutils.CopyFile(src, dest); err != nil {
		return failed(entry, err)
	}

	return Result{Entry: entry, Outcome: OutcomeUpdated}
}

func (e *Engine) syncDir(entry manifest.Entry, src, dest string) Result {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Entry: entry, Outcome: OutcomeSourceMissing}
		}
		return failed(entry, fmt.Errorf("stat source %s: %w", src, err))
	}
	if !info.IsDir() {
		return failed(entry, fmt.Errorf("source is not a directory: %s", src))
	}

	if e.DryRun {
		return Result{Entry: entry, Outcome: OutcomeWouldUpdate}
	}

	// Directory entries are replaced wholesale: remove the destination and
	// recreate it from the source tree. Files present only at the
	// destination are discarded.
	if err := fileutils.RemovePath(dest); err != nil {
		return failed(entry, fmt.Errorf("remove destination %s: %w", dest, err))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return failed(entry, fmt.Errorf("create parent directory for %s: %w", dest, err))
	}
	if err := fileutils.CopyTree(src, dest); err != nil {
		return failed(entry, err)
	}

	return Result{Entry: entry, Outcome: OutcomeUpdated}
}

func failed(entry manifest.Entry, err error) Result {
	return Result{
		Entry:   entry,
		Outcome: OutcomeFailed,
		Err:     err,
	}
}
