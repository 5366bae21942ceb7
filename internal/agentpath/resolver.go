// Package agentpath resolves the agent backend's working directory and
// interpreter across build modes and bundle layouts.
//
// Packaged application layouts vary across packaging tools and operating
// systems, so resolution is an ordered, tolerant search over candidate
// resource roots. When nothing matches, the resolver returns its default
// guess instead of an error: the launcher then fails with a concrete
// "file not found" from the OS, which names the path an operator can fix.
package agentpath

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/inkforge/inkforge/internal/constants"
)

// Resolver locates the agent directory and interpreter.
type Resolver struct {
	// DevMode selects development resolution: the agent working tree under
	// the current directory and the system interpreter from PATH.
	DevMode bool

	// ResourceDir is the application's bundled resource directory, when the
	// shell knows it (packaged builds). May be empty.
	ResourceDir string
}

// AgentDir returns the agent backend's working directory.
func (r *Resolver) AgentDir() string {
	if r.DevMode {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		return filepath.Join(cwd, constants.DirAgent)
	}

	if dir, ok := r.findBundled(constants.DirAgent); ok {
		return dir
	}
	// Fall back to the first root's guess so the launcher surfaces a
	// concrete missing path.
	return filepath.Join(r.firstRoot(), constants.DirAgent)
}

// Interpreter returns the Python executable used to run the agent.
func (r *Resolver) Interpreter() string {
	if r.DevMode {
		name := systemInterpreter
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
		return name
	}

	base, ok := r.findBundled(constants.DirPythonEmbed)
	if !ok {
		base = filepath.Join(r.firstRoot(), constants.DirPythonEmbed)
	}

	for _, rel := range embeddedInterpreterCandidates {
		candidate := filepath.Join(base, filepath.FromSlash(rel))
		if pathExists(candidate) {
			return candidate
		}
	}
	return filepath.Join(base, filepath.FromSlash(defaultEmbeddedInterpreter))
}

// candidateRoots returns the ordered resource roots to search: the bundled
// resource directory, then <exe-dir>/resources, then <exe-dir> itself.
func (r *Resolver) candidateRoots() []string {
	var roots []string
	if r.ResourceDir != "" {
		roots = append(roots, r.ResourceDir)
	}
	if dir, ok := exeDir(); ok {
		roots = append(roots, filepath.Join(dir, constants.DirResources), dir)
	}
	return roots
}

// firstRoot returns the preferred root, or "." when none is known.
func (r *Resolver) firstRoot() string {
	roots := r.candidateRoots()
	if len(roots) == 0 {
		return "."
	}
	return roots[0]
}

// findBundled searches each candidate root for name, checking <root>/<name>
// and then <root>/resources/<name>. Some bundle layouts place user resources
// under a nested resources/ folder.
func (r *Resolver) findBundled(name string) (string, bool) {
	for _, root := range r.candidateRoots() {
		direct := filepath.Join(root, name)
		if pathExists(direct) {
			return direct, true
		}
		nested := filepath.Join(root, constants.DirResources, name)
		if pathExists(nested) {
			return nested, true
		}
	}
	return "", false
}

func exeDir() (string, bool) {
	exe, err := os.Executable()
	if err != nil {
		return "", false
	}
	return filepath.Dir(exe), true
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
