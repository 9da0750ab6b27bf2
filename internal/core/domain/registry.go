// Package domain contains the core domain models for the task registry and its execution plan.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Registry is the immutable mapping from task name to task definition.
// It is built once at startup from the taskfile and validated before any
// task executes.
type Registry struct {
	tasks       map[InternedString]Task
	defaultTask InternedString
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tasks: make(map[InternedString]Task),
	}
}

// AddTask registers a task.
// It returns an error if a task with the same name already exists.
func (r *Registry) AddTask(t *Task) error {
	if _, exists := r.tasks[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_name", t.Name.String())
	}
	r.tasks[t.Name] = *t
	return nil
}

// SetDefault marks the task run when no target is requested.
// The task must exist in the registry.
func (r *Registry) SetDefault(name string) error {
	interned := NewInternedString(name)
	if _, exists := r.tasks[interned]; !exists {
		return zerr.With(ErrTaskNotFound, "task_name", name)
	}
	r.defaultTask = interned
	return nil
}

// DefaultTask returns the name of the default task, or "" if none is set.
func (r *Registry) DefaultTask() string {
	return r.defaultTask.String()
}

// Lookup returns the task with the given name.
func (r *Registry) Lookup(name string) (Task, error) {
	task, exists := r.tasks[NewInternedString(name)]
	if !exists {
		return Task{}, zerr.With(ErrTaskNotFound, "task_name", name)
	}
	return task, nil
}

// TaskCount returns the number of registered tasks.
func (r *Registry) TaskCount() int {
	return len(r.tasks)
}

// Names returns all task names sorted lexicographically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name.String())
	}
	slices.Sort(names)
	return names
}

// Tasks returns an iterator over all tasks in lexicographic name order.
func (r *Registry) Tasks() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range r.Names() {
			if !yield(r.tasks[NewInternedString(name)]) {
				return
			}
		}
	}
}

// Validate checks that every prerequisite exists and that no prerequisite
// cycle exists, using a depth-first topological sort. Tasks are visited in
// sorted name order so validation errors are deterministic.
func (r *Registry) Validate() error {
	visited := make(map[InternedString]int, len(r.tasks)) // 0: unvisited, 1: visiting, 2: visited

	for _, name := range r.Names() {
		interned := NewInternedString(name)
		if visited[interned] == 0 {
			if _, err := r.visit(interned, visited, nil, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

// Plan resolves the requested targets to the ordered list of tasks to
// execute: each target's transitive prerequisites depth-first in declared
// order, every task at most once across all targets, each target after its
// prerequisites.
func (r *Registry) Plan(targets []string) ([]Task, error) {
	visited := make(map[InternedString]int, len(r.tasks))
	var order []InternedString

	for _, target := range targets {
		interned := NewInternedString(target)
		if _, exists := r.tasks[interned]; !exists {
			return nil, zerr.With(ErrTaskNotFound, "task_name", target)
		}
		if visited[interned] == 0 {
			var err error
			order, err = r.visit(interned, visited, nil, order)
			if err != nil {
				return nil, err
			}
		}
	}

	plan := make([]Task, len(order))
	for i, name := range order {
		plan[i] = r.tasks[name]
	}
	return plan, nil
}

// visit walks u's prerequisites depth-first in declared order, appending u
// to order after them. path carries the current recursion stack for cycle
// reporting.
func (r *Registry) visit(
	u InternedString,
	visited map[InternedString]int,
	path []InternedString,
	order []InternedString,
) ([]InternedString, error) {
	visited[u] = 1
	path = append(path, u)

	task, exists := r.tasks[u]
	if !exists {
		return nil, zerr.With(ErrMissingDependency, "dependency", u.String())
	}

	for _, dep := range task.Dependencies {
		if visited[dep] == 1 {
			return nil, r.buildCycleError(path, dep)
		}
		if visited[dep] == 0 {
			var err error
			order, err = r.visit(dep, visited, path, order)
			if err != nil {
				return nil, err
			}
		}
	}

	visited[u] = 2
	return append(order, u), nil
}

// buildCycleError constructs an error with cycle path metadata.
func (r *Registry) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}
