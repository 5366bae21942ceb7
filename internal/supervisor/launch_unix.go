//go:build !windows

package supervisor

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/inkforge/inkforge/internal/constants"
)

// configureSysProcAttr puts the agent in its own process group so tree
// termination can signal every descendant with one kill.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// redirectOutput appends the agent's stdout and stderr to agent.log inside
// the data directory. A failure to open the log silently falls back to
// inherited streams; losing redirection must not block a launch.
func redirectOutput(cmd *exec.Cmd, dataDir string) {
	logPath := filepath.Join(dataDir, constants.FileAgentLog)
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302,G304: agent output log under the data dir
	if err != nil {
		return
	}
	cmd.Stdout = f
	cmd.Stderr = f
}
