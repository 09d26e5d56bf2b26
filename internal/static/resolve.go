// Package static resolves request paths to files below a root directory and
// streams them as responses.
package static

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Result is the outcome of resolving a relative path. Path is the candidate
// filesystem path whether or not it was found.
type Result struct {
	Path  string
	Found bool
	Info  fs.FileInfo
}

// Resolve maps relPath below root. An empty relPath selects the first entry
// of indexFiles that exists as a regular file; if none does, the candidate
// is root itself, which is never Found. Candidates that escape root after
// cleaning are reported as not found without touching the filesystem.
func Resolve(root, relPath string, indexFiles []string) Result {
	effective := relPath
	if effective == "" {
		for _, name := range indexFiles {
			if isRegular(filepath.Join(root, name)) {
				effective = name
				break
			}
		}
	}

	candidate := filepath.Join(root, filepath.FromSlash(effective))
	if !within(root, candidate) {
		return Result{Path: candidate}
	}

	info, err := os.Stat(candidate)
	if err != nil || !info.Mode().IsRegular() {
		return Result{Path: candidate}
	}

	return Result{Path: candidate, Found: true, Info: info}
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// within reports whether path lies in root or below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
