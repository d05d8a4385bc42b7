package sync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okrause/tmplsync/pkg/manifest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func parseEntries(t *testing.T, lines string) []manifest.Entry {
	t.Helper()
	entries, err := manifest.Parse(strings.NewReader(lines))
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return entries
}

// treeSnapshot captures every path and file content under root.
func treeSnapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	snapshot := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			snapshot[rel] = "<dir>"
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snapshot[rel] = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return snapshot
}

func snapshotsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func TestRunUpdatesDifferingFileAndNewDirectory(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "README.md"), "template readme\n")
	writeFile(t, filepath.Join(src, "scripts", "build.sh"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(dest, "README.md"), "stale readme\n")

	entries := parseEntries(t, "README.md\nscripts/\n")
	report, err := New(src, dest, false, nil).Run(entries)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if report.Updated != 2 {
		t.Fatalf("report.Updated = %d, want 2", report.Updated)
	}
	if got := readFile(t, filepath.Join(dest, "README.md")); got != "template readme\n" {
		t.Fatalf("README.md = %q, want template contents", got)
	}
	if got := readFile(t, filepath.Join(dest, "scripts", "build.sh")); got != "#!/bin/sh\n" {
		t.Fatalf("scripts/build.sh = %q, want template contents", got)
	}
	if report.Results[0].Outcome != OutcomeUpdated || report.Results[1].Outcome != OutcomeUpdated {
		t.Fatalf("unexpected outcomes: %+v", report.Results)
	}
}

func TestRunSkipsIdenticalFileButReplacesDirectory(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "README.md"), "same\n")
	writeFile(t, filepath.Join(dest, "README.md"), "same\n")
	writeFile(t, filepath.Join(src, "scripts", "a.sh"), "a\n")
	writeFile(t, filepath.Join(dest, "scripts", "a.sh"), "a\n")
	writeFile(t, filepath.Join(dest, "scripts", "local-only.sh"), "keep me?\n")

	entries := parseEntries(t, "README.md\nscripts/\n")
	report, err := New(src, dest, false, nil).Run(entries)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if report.Results[0].Outcome != OutcomeUpToDate {
		t.Fatalf("README.md outcome = %s, want up-to-date", report.Results[0].Outcome)
	}
	// Directories have no equality short-circuit: the destination directory
	// is replaced and destination-only files are discarded.
	if report.Results[1].Outcome != OutcomeUpdated {
		t.Fatalf("scripts/ outcome = %s, want updated", report.Results[1].Outcome)
	}
	if report.Updated != 1 {
		t.Fatalf("report.Updated = %d, want 1", report.Updated)
	}
	if _, err := os.Stat(filepath.Join(dest, "scripts", "local-only.sh")); !os.IsNotExist(err) {
		t.Fatalf("destination-only file should be discarded, stat err = %v", err)
	}
	if got := readFile(t, filepath.Join(dest, "scripts", "a.sh")); got != "a\n" {
		t.Fatalf("scripts/a.sh = %q, want %q", got, "a\n")
	}
}

func TestRunDryRunMutatesNothing(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "config.yaml"), "new\n")
	writeFile(t, filepath.Join(dest, "config.yaml"), "old\n")
	writeFile(t, filepath.Join(dest, "untouched.txt"), "untouched\n")

	entries := parseEntries(t, "missing.txt\nconfig.yaml\n")
	before := treeSnapshot(t, dest)

	report, err := New(src, dest, true, nil).Run(entries)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if report.Results[0].Outcome != OutcomeSourceMissing {
		t.Fatalf("missing.txt outcome = %s, want source-missing", report.Results[0].Outcome)
	}
	if report.Results[1].Outcome != OutcomeWouldUpdate {
		t.Fatalf("config.yaml outcome = %s, want would-update", report.Results[1].Outcome)
	}
	if report.Updated != 1 {
		t.Fatalf("report.Updated = %d, want 1", report.Updated)
	}

	after := treeSnapshot(t, dest)
	if !snapshotsEqual(before, after) {
		t.Fatalf("dry run mutated the destination tree:\nbefore: %v\nafter:  %v", before, after)
	}
}

func TestRunDryRunCountsDirectoryEntries(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "scripts", "a.sh"), "a\n")

	before := treeSnapshot(t, dest)
	report, err := New(src, dest, true, nil).Run(parseEntries(t, "scripts/\n"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if report.Updated != 1 {
		t.Fatalf("report.Updated = %d, want 1", report.Updated)
	}
	if report.Results[0].Outcome != OutcomeWouldUpdate {
		t.Fatalf("outcome = %s, want would-update", report.Results[0].Outcome)
	}
	if !snapshotsEqual(before, treeSnapshot(t, dest)) {
		t.Fatal("dry run mutated the destination tree")
	}
}

func TestRunContinuesPastMissingSources(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "present.txt"), "here\n")

	entries := parseEntries(t, "gone.txt\ngone-dir/\npresent.txt\n")
	report, err := New(src, dest, false, nil).Run(entries)
	if err != nil {
		t.Fatalf("missing sources must not fail the run: %v", err)
	}

	if report.Results[0].Outcome != OutcomeSourceMissing {
		t.Fatalf("gone.txt outcome = %s, want source-missing", report.Results[0].Outcome)
	}
	if report.Results[1].Outcome != OutcomeSourceMissing {
		t.Fatalf("gone-dir/ outcome = %s, want source-missing", report.Results[1].Outcome)
	}
	if report.Results[2].Outcome != OutcomeUpdated {
		t.Fatalf("present.txt outcome = %s, want updated", report.Results[2].Outcome)
	}
	if got := readFile(t, filepath.Join(dest, "present.txt")); got != "here\n" {
		t.Fatalf("present.txt = %q, want %q", got, "here\n")
	}
}

func TestRunCreatesMissingParentDirectories(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "a", "b", "c.txt"), "deep\n")

	report, err := New(src, dest, false, nil).Run(parseEntries(t, "a/b/c.txt\n"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("report.Updated = %d, want 1", report.Updated)
	}
	if got := readFile(t, filepath.Join(dest, "a", "b", "c.txt")); got != "deep\n" {
		t.Fatalf("a/b/c.txt = %q, want %q", got, "deep\n")
	}
}

func TestRunSurfacesEntryFailureAndContinues(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	// A directory entry whose source is a plain file cannot be copied as a
	// tree; the failure must be surfaced, not swallowed.
	writeFile(t, filepath.Join(src, "scripts"), "not a directory\n")
	writeFile(t, filepath.Join(src, "after.txt"), "still synced\n")

	report, err := New(src, dest, false, nil).Run(parseEntries(t, "scripts/\nafter.txt\n"))
	if err == nil {
		t.Fatal("Run should report the directory copy failure")
	}

	if report.Results[0].Outcome != OutcomeFailed {
		t.Fatalf("scripts/ outcome = %s, want failed", report.Results[0].Outcome)
	}
	if report.Results[0].Err == nil {
		t.Fatal("failed result should carry its error")
	}
	if report.Results[1].Outcome != OutcomeUpdated {
		t.Fatalf("after.txt outcome = %s, want updated", report.Results[1].Outcome)
	}
}

func TestRunNeverMutatesSourceTree(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "file.txt"), "v2\n")
	writeFile(t, filepath.Join(src, "dir", "f"), "x\n")
	writeFile(t, filepath.Join(dest, "file.txt"), "v1\n")

	before := treeSnapshot(t, src)
	if _, err := New(src, dest, false, nil).Run(parseEntries(t, "file.txt\ndir/\n")); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !snapshotsEqual(before, treeSnapshot(t, src)) {
		t.Fatal("sync mutated the source tree")
	}
}
