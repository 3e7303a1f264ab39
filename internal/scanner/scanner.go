// Package scanner discovers the Python files a run should analyze.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

type Scanner struct {
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func New(excludeDirs, excludeFiles []string) (*Scanner, error) {
	s := &Scanner{}

	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude dir pattern %q: %w", pattern, err)
		}
		s.excludeDirs = append(s.excludeDirs, g)
	}

	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude file pattern %q: %w", pattern, err)
		}
		s.excludeFiles = append(s.excludeFiles, g)
	}

	return s, nil
}

// Scan walks the given roots and returns every Python file that survives the
// exclude patterns. A root that is itself a file is returned as-is when it
// qualifies.
func (s *Scanner) Scan(roots []string) ([]string, error) {
	var files []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if s.WantsFile(root) {
				files = append(files, root)
			}
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if s.excludeDir(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if s.WantsFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// WantsFile reports whether path is a Python file the scanner would analyze.
func (s *Scanner) WantsFile(path string) bool {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".py") {
		return false
	}
	for _, g := range s.excludeFiles {
		if g.Match(base) {
			return false
		}
	}
	return true
}

func (s *Scanner) excludeDir(path string) bool {
	base := filepath.Base(path)
	for _, g := range s.excludeDirs {
		if g.Match(base) {
			return true
		}
	}
	return false
}
