//go:build windows

package agentpath

// systemInterpreter is the development-mode interpreter name looked up on PATH.
const systemInterpreter = "python"

// embeddedInterpreterCandidates are checked in order under the bundled
// python_embed directory.
var embeddedInterpreterCandidates = []string{
	"python.exe",
	"python3.exe",
	"python",
	"python3",
}

// defaultEmbeddedInterpreter is the fallback guess when no candidate exists.
const defaultEmbeddedInterpreter = "python.exe"
