package agentpath

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAgentDirDevMode(t *testing.T) {
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{DevMode: true}
	got := r.AgentDir()
	want := filepath.Join(dir, "agent")

	// Resolve symlinks: macOS temp dirs live under /private.
	gotReal, _ := filepath.EvalSymlinks(filepath.Dir(got))
	wantReal, _ := filepath.EvalSymlinks(filepath.Dir(want))
	if gotReal != wantReal || filepath.Base(got) != "agent" {
		t.Errorf("AgentDir = %q, want %q", got, want)
	}
}

func TestAgentDirPackagedPrefersResourceDir(t *testing.T) {
	resources := t.TempDir()
	agentDir := filepath.Join(resources, "agent")
	if err := os.MkdirAll(agentDir, 0755); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{ResourceDir: resources}
	if got := r.AgentDir(); got != agentDir {
		t.Errorf("AgentDir = %q, want %q", got, agentDir)
	}
}

func TestAgentDirPackagedNestedResources(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "resources", "agent")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{ResourceDir: root}
	if got := r.AgentDir(); got != nested {
		t.Errorf("AgentDir = %q, want nested %q", got, nested)
	}
}

func TestAgentDirPackagedFallbackGuess(t *testing.T) {
	// Nothing exists: the resolver must still return the first root's
	// default guess rather than an error.
	root := filepath.Join(t.TempDir(), "empty")

	r := &Resolver{ResourceDir: root}
	want := filepath.Join(root, "agent")
	if got := r.AgentDir(); got != want {
		t.Errorf("AgentDir = %q, want fallback %q", got, want)
	}
}

func TestInterpreterPackagedCandidateSearch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("candidate layout differs on windows")
	}

	resources := t.TempDir()
	binDir := filepath.Join(resources, "python_embed", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Only a pinned minor version is present.
	pinned := filepath.Join(binDir, "python3.11")
	if err := os.WriteFile(pinned, []byte("#!/bin/sh\n"), 0755); err != nil { //nolint:gosec // G306: test fixture
		t.Fatal(err)
	}

	r := &Resolver{ResourceDir: resources}
	if got := r.Interpreter(); got != pinned {
		t.Errorf("Interpreter = %q, want pinned candidate %q", got, pinned)
	}
}

func TestInterpreterPackagedFallbackGuess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("candidate layout differs on windows")
	}

	root := filepath.Join(t.TempDir(), "empty")
	r := &Resolver{ResourceDir: root}

	want := filepath.Join(root, "python_embed", "bin", "python3")
	if got := r.Interpreter(); got != want {
		t.Errorf("Interpreter = %q, want fallback %q", got, want)
	}
}
