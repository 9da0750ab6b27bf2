package config

// Taskfile represents the structure of the baton.yaml configuration file.
type Taskfile struct {
	Version string             `yaml:"version"`
	Default string             `yaml:"default"`
	Tasks   map[string]TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Cmds        [][]string        `yaml:"cmds"`
	DependsOn   []string          `yaml:"dependsOn"`
	Inputs      []string          `yaml:"inputs"`
	Outputs     []string          `yaml:"outputs"`
	Environment map[string]string `yaml:"environment"`
	WorkingDir  string            `yaml:"workingDir"`
	Remove      *RemoveDTO        `yaml:"remove"`
}

// RemoveDTO represents a task's native cleanup step in the configuration.
type RemoveDTO struct {
	Patterns []string `yaml:"patterns"`
	Paths    []string `yaml:"paths"`
}
