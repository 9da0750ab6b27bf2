package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.skiff.dev/baton/internal/adapters/config"
	"go.skiff.dev/baton/internal/core/domain"
	"go.trai.ch/zerr"
)

func writeTaskfile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "baton.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write taskfile: %v", err)
	}
	return path
}

func TestLoad_Success(t *testing.T) {
	path := writeTaskfile(t, `
version: "1"
default: all
tasks:
  clean:
    remove:
      patterns: ["*.pyc"]
      paths: ["docs/_build"]
  lint:
    cmds:
      - ["flake8", "src"]
  test:
    dependsOn: ["lint"]
    cmds:
      - ["pytest", "tests"]
    inputs: ["src/**/*.py"]
  all:
    dependsOn: ["clean", "lint", "test"]
`)

	registry, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if registry.TaskCount() != 4 {
		t.Fatalf("expected 4 tasks, got %d", registry.TaskCount())
	}
	if registry.DefaultTask() != "all" {
		t.Errorf("expected default task all, got %q", registry.DefaultTask())
	}

	clean, err := registry.Lookup("clean")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clean.Remove == nil {
		t.Fatal("expected clean task to carry a remove spec")
	}
	if len(clean.Remove.Patterns) != 1 || clean.Remove.Patterns[0] != "*.pyc" {
		t.Errorf("unexpected remove patterns: %v", clean.Remove.Patterns)
	}
	if len(clean.Remove.Paths) != 1 || clean.Remove.Paths[0] != "docs/_build" {
		t.Errorf("unexpected remove paths: %v", clean.Remove.Paths)
	}

	all, err := registry.Lookup("all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !all.IsAggregate() {
		t.Error("expected all to be an aggregate task")
	}

	plan, err := registry.Plan([]string{"all"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	order := make([]string, len(plan))
	for i, task := range plan {
		order[i] = task.Name.String()
	}
	want := []string{"clean", "lint", "test", "all"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected plan order: got %v, want %v", order, want)
		}
	}
}

func TestLoad_MissingDependency(t *testing.T) {
	path := writeTaskfile(t, `
version: "1"
tasks:
  test:
    dependsOn: ["missing"]
`)

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for missing dependency, got nil")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T: %v", err, err)
	}
	meta := zErr.Metadata()
	if dep, ok := meta["missing_dependency"].(string); !ok || dep != "missing" {
		t.Errorf("expected metadata missing_dependency=missing, got %v", meta["missing_dependency"])
	}
}

func TestLoad_InvalidTaskName(t *testing.T) {
	path := writeTaskfile(t, `
version: "1"
tasks:
  "bad name":
    cmds:
      - ["true"]
`)

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for invalid task name, got nil")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T: %v", err, err)
	}
	meta := zErr.Metadata()
	if name, ok := meta["task_name"].(string); !ok || name != "bad name" {
		t.Errorf("expected metadata task_name, got %v", meta["task_name"])
	}
}

func TestLoad_Cycle(t *testing.T) {
	path := writeTaskfile(t, `
version: "1"
tasks:
  a:
    dependsOn: ["b"]
  b:
    dependsOn: ["a"]
`)

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "baton.yaml"))
	if err == nil {
		t.Fatal("expected error for missing taskfile, got nil")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T: %v", err, err)
	}
	if _, ok := zErr.Metadata()["path"]; !ok {
		t.Error("expected metadata path to be set")
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := writeTaskfile(t, "tasks: [not: a: map")

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for malformed yaml, got nil")
	}
	if !strings.Contains(err.Error(), domain.ErrConfigParseFailed.Error()) {
		t.Errorf("expected parse failure message, got %v", err)
	}
}

func TestLoad_ReadError(t *testing.T) {
	// A directory named like the taskfile fails the read, not the lookup.
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "baton.yaml")
	if err := os.Mkdir(path, 0o750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unreadable taskfile, got nil")
	}
	if !strings.Contains(err.Error(), domain.ErrConfigReadFailed.Error()) {
		t.Errorf("expected read failure message, got %v", err)
	}
}

func TestLoad_InvalidDefault(t *testing.T) {
	path := writeTaskfile(t, `
version: "1"
default: missing
tasks:
  lint:
    cmds:
      - ["true"]
`)

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unknown default task, got nil")
	}
}

func TestLoader_SetFilename(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
version: "1"
tasks:
  lint:
    cmds:
      - ["true"]
`
	if err := os.WriteFile(filepath.Join(tmpDir, "custom.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write taskfile: %v", err)
	}

	loader := config.NewLoader(noopLogger{})
	loader.SetFilename("custom.yaml")

	registry, err := loader.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if registry.TaskCount() != 1 {
		t.Errorf("expected 1 task, got %d", registry.TaskCount())
	}

	if _, err := registry.Lookup("lint"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_CanonicalizesInputs(t *testing.T) {
	path := writeTaskfile(t, `
version: "1"
tasks:
  test:
    cmds:
      - ["true"]
    inputs: ["b.py", "a.py", "b.py"]
`)

	registry, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	test, err := registry.Lookup("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(test.Inputs) != 2 {
		t.Fatalf("expected deduplicated inputs, got %d entries", len(test.Inputs))
	}
	if test.Inputs[0].String() != "a.py" || test.Inputs[1].String() != "b.py" {
		t.Errorf("expected sorted inputs, got %v", test.Inputs)
	}
}

type noopLogger struct{}

func (noopLogger) Info(string) {}
func (noopLogger) Error(error) {}
