// Package manifest reads the sync manifest shipped inside a template
// repository: a plain text file listing the relative paths that participate
// in synchronization.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Kind distinguishes the two entry forms a manifest line can take.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// Entry is a single manifest line: a relative path, and whether the line's
// trailing separator marked it as a directory. Directory entries store the
// path without the trailing separator.
type Entry struct {
	Path string
	Kind Kind
}

func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

func (e Entry) String() string {
	if e.IsDir() {
		return e.Path + "/"
	}
	return e.Path
}

// Parse reads manifest entries from r, one path per line. Blank lines and
// lines starting with '#' are ignored; surrounding whitespace is trimmed per
// entry. A trailing '/' marks a directory entry. Order is preserved.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		kind := KindFile
		if strings.HasSuffix(line, "/") {
			kind = KindDir
			line = strings.TrimRight(line, "/")
			if line == "" {
				continue
			}
		}

		entries = append(entries, Entry{
			Path: line,
			Kind: kind,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return entries, nil
}
