package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/hecto/internal/log"
)

// ReadDocument returns the content of path. A missing file is a new, empty
// document.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if errors.Is(err, fs.ErrNotExist) {
		log.Info(log.CatFile, "New file", "path", path)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	log.Debug(log.CatFile, "Read file", "path", path, "bytes", len(data))
	return string(data), nil
}

// WriteDocument replaces path with content. The data goes to a temporary file
// in the same directory first, so a failed write never truncates the
// original. An existing file keeps its permissions.
func WriteDocument(path, content string) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	log.Info(log.CatFile, "Wrote file", "path", path, "bytes", len(content))
	return nil
}

// LineDelta counts lines added and removed going from before to after.
func LineDelta(before, after string) (added, removed int) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += countLines(d.Text)
		}
	}
	return added, removed
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// SaveSummary is the message shown after a successful write.
func SaveSummary(path string, lines int, before, after string) string {
	added, removed := LineDelta(before, after)
	return fmt.Sprintf("%q %d lines written (+%d -%d)", filepath.Base(path), lines, added, removed)
}
