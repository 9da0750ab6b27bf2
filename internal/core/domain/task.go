package domain

// Task represents a named unit of work in the registry.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name         InternedString
	Commands     [][]string
	Dependencies []InternedString
	Inputs       []InternedString
	Outputs      []InternedString
	Environment  map[string]string
	WorkingDir   InternedString
	Remove       *RemoveSpec
}

// RemoveSpec describes filesystem cleanup a task performs natively,
// without delegating to a subprocess.
type RemoveSpec struct {
	// Patterns are file name patterns deleted recursively from the project
	// root. Version control directories are never entered.
	Patterns []string
	// Paths are files or directories removed outright, missing ones included.
	Paths []string
}

// IsAggregate reports whether the task only sequences its prerequisites
// and performs no work of its own.
func (t *Task) IsAggregate() bool {
	return len(t.Commands) == 0 && t.Remove == nil && len(t.Dependencies) > 0
}
