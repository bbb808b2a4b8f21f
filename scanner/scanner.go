// Package scanner discovers the source files a program snapshot is built
// from.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var skippedDirs = map[string]bool{
	"vendor":   true,
	"testdata": true,
	".git":     true,
}

// Scanner collects Go source files under a root directory.
type Scanner struct {
	rootDir      string
	includeTests bool
}

func New(rootDir string, includeTests bool) *Scanner {
	return &Scanner{rootDir: rootDir, includeTests: includeTests}
}

// Scan walks the root and returns the matching file paths in sorted
// order, so repeated scans of the same tree build identical snapshots.
func (s *Scanner) Scan() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		if !s.includeTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
