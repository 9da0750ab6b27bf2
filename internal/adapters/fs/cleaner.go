package fs

import (
	"os"
	"path/filepath"

	"go.skiff.dev/baton/internal/core/domain"
	"go.skiff.dev/baton/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Cleaner = (*Cleaner)(nil)

// Cleaner implements a task's native remove step: pattern-matched files are
// deleted during a recursive walk that never enters version control
// directories, and fixed paths are removed outright.
type Cleaner struct {
	walker *Walker
	logger ports.Logger
}

// NewCleaner creates a new Cleaner.
func NewCleaner(walker *Walker, logger ports.Logger) *Cleaner {
	return &Cleaner{walker: walker, logger: logger}
}

// Clean deletes everything the spec names under root. Targets that are
// already absent are not errors.
func (c *Cleaner) Clean(root string, spec *domain.RemoveSpec) error {
	if spec == nil {
		return nil
	}

	if err := c.removePatterns(root, spec.Patterns); err != nil {
		return err
	}

	for _, path := range spec.Paths {
		target := filepath.Join(root, path)
		// RemoveAll is a no-op for missing paths.
		if err := os.RemoveAll(target); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", target)
		}
		c.logger.Info("removed " + target)
	}

	return nil
}

func (c *Cleaner) removePatterns(root string, patterns []string) error {
	if len(patterns) == 0 {
		return nil
	}

	// Collect first, delete after: removing entries mid-walk confuses WalkDir.
	var matches []string
	for path := range c.walker.WalkFiles(root, nil) {
		name := filepath.Base(path)
		for _, pattern := range patterns {
			matched, _ := filepath.Match(pattern, name)
			if matched {
				matches = append(matches, path)
				break
			}
		}
	}

	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path)
		}
	}

	return nil
}
