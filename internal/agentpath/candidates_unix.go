//go:build !windows

package agentpath

// systemInterpreter is the development-mode interpreter name looked up on PATH.
const systemInterpreter = "python3"

// embeddedInterpreterCandidates are checked in order under the bundled
// python_embed directory. Pinned minor versions cover bundles that ship a
// versioned binary without the python3 symlink.
var embeddedInterpreterCandidates = []string{
	"bin/python3",
	"bin/python",
	"python3",
	"python",
	"bin/python3.10",
	"bin/python3.11",
	"bin/python3.12",
}

// defaultEmbeddedInterpreter is the fallback guess when no candidate exists.
const defaultEmbeddedInterpreter = "bin/python3"
