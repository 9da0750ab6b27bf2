// Package fs provides file system adapters for walking, hashing and removing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// vcsDirectories are never entered during a walk.
var vcsDirectories = map[string]bool{
	".git": true,
	".jj":  true,
	".hg":  true,
}

// Walker provides recursive file walking.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root in lexical order, skipping version
// control directories and any directory or file matching an ignore pattern.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if skip := w.skipAction(d, ignores); skip != nil {
				return skip
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// skipAction returns filepath.SkipDir for directories that must not be
// entered, a nil error sentinel telling the walk to continue otherwise.
func (w *Walker) skipAction(d fs.DirEntry, ignores []string) error {
	name := d.Name()

	if d.IsDir() && vcsDirectories[name] {
		return filepath.SkipDir
	}

	for _, ignore := range ignores {
		matched, _ := filepath.Match(ignore, name)
		if matched && d.IsDir() {
			return filepath.SkipDir
		}
	}

	return nil
}
