package manifest

import (
	"strings"
	"testing"
)

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"# template files",
		"",
		"  # comment  ",
		"README.md",
		"   ",
		"scripts/",
	}, "\n")

	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Parse returned %d entries, want 2", len(entries))
	}
	if entries[0].Path != "README.md" || entries[0].Kind != KindFile {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Path != "scripts" || entries[1].Kind != KindDir {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestParseTrimsWhitespacePerEntry(t *testing.T) {
	t.Parallel()

	entries, err := Parse(strings.NewReader("  foo/bar.txt \t\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("Parse returned %d entries, want 1", len(entries))
	}
	if entries[0].Path != "foo/bar.txt" {
		t.Fatalf("entry path = %q, want %q", entries[0].Path, "foo/bar.txt")
	}
	if entries[0].IsDir() {
		t.Fatal("plain path should be a file entry")
	}
}

func TestParseTrailingSlashMarksDirectory(t *testing.T) {
	t.Parallel()

	entries, err := Parse(strings.NewReader("scripts/\nconfig/hooks/\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Parse returned %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if !e.IsDir() {
			t.Fatalf("entry %q should be a directory entry", e.Path)
		}
		if strings.HasSuffix(e.Path, "/") {
			t.Fatalf("directory entry path should not keep the separator: %q", e.Path)
		}
	}
	if entries[1].Path != "config/hooks" {
		t.Fatalf("entry path = %q, want %q", entries[1].Path, "config/hooks")
	}
}

func TestParsePreservesOrder(t *testing.T) {
	t.Parallel()

	entries, err := Parse(strings.NewReader("b.txt\na.txt\nz/\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []string{"b.txt", "a.txt", "z/"}
	if len(entries) != len(want) {
		t.Fatalf("Parse returned %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.String() != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, e.String(), want[i])
		}
	}
}

func TestParseIgnoresBareSeparatorLine(t *testing.T) {
	t.Parallel()

	entries, err := Parse(strings.NewReader("/\n"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Parse returned %d entries, want 0", len(entries))
	}
}
