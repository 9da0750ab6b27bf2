// Package config provides the taskfile loader for baton.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"

	"go.skiff.dev/baton/internal/core/domain"
	"go.skiff.dev/baton/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the taskfile looked up when no -c flag is given.
const DefaultFilename = "baton.yaml"

var taskNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML taskfile.
type Loader struct {
	filename string
	logger   ports.Logger
}

// NewLoader creates a Loader reading DefaultFilename.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		filename: DefaultFilename,
		logger:   logger,
	}
}

// SetFilename overrides the taskfile name, typically from the -c flag.
func (l *Loader) SetFilename(name string) {
	if name != "" {
		l.filename = name
	}
}

// Load reads the taskfile from the given working directory and returns the
// validated registry.
func (l *Loader) Load(cwd string) (*domain.Registry, error) {
	registry, err := Load(filepath.Join(cwd, l.filename))
	if err != nil {
		return nil, err
	}
	l.logger.Info(fmt.Sprintf("loaded %d tasks from %s", registry.TaskCount(), l.filename))
	return registry, nil
}

// Load reads a taskfile from the given path and returns a validated
// domain.Registry.
func Load(path string) (*domain.Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var taskfile Taskfile
	if err := yaml.Unmarshal(data, &taskfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	registry, err := buildRegistry(&taskfile)
	if err != nil {
		return nil, err
	}

	// Cycle and dangling reference checks happen once here, so every
	// registry handed out is valid for the lifetime of the invocation.
	if err := registry.Validate(); err != nil {
		return nil, err
	}

	if taskfile.Default != "" {
		if err := registry.SetDefault(taskfile.Default); err != nil {
			return nil, zerr.Wrap(err, "invalid default task")
		}
	}

	return registry, nil
}

func buildRegistry(taskfile *Taskfile) (*domain.Registry, error) {
	registry := domain.NewRegistry()

	names := make([]string, 0, len(taskfile.Tasks))
	taskNames := make(map[string]bool, len(taskfile.Tasks))
	for name := range taskfile.Tasks {
		names = append(names, name)
		taskNames[name] = true
	}
	sort.Strings(names)

	for _, name := range names {
		dto := taskfile.Tasks[name]

		if !taskNamePattern.MatchString(name) {
			return nil, zerr.With(domain.ErrInvalidTaskName, "task_name", name)
		}

		for _, dep := range dto.DependsOn {
			if !taskNames[dep] {
				return nil, zerr.With(domain.ErrMissingDependency, "missing_dependency", dep)
			}
		}

		task := &domain.Task{
			Name:         domain.NewInternedString(name),
			Commands:     dto.Cmds,
			Dependencies: internStrings(dto.DependsOn),
			Inputs:       canonicalizeStrings(dto.Inputs),
			Outputs:      canonicalizeStrings(dto.Outputs),
			Environment:  dto.Environment,
			WorkingDir:   domain.NewInternedString(dto.WorkingDir),
			Remove:       removeSpec(dto.Remove),
		}

		if err := registry.AddTask(task); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func removeSpec(dto *RemoveDTO) *domain.RemoveSpec {
	if dto == nil {
		return nil
	}
	return &domain.RemoveSpec{
		Patterns: dto.Patterns,
		Paths:    dto.Paths,
	}
}

func internStrings(strs []string) []domain.InternedString {
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

func canonicalizeStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}

	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)

	unique := slices.Compact(sorted)
	res := make([]domain.InternedString, len(unique))
	for i, s := range unique {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
