//go:build windows

package supervisor

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureSysProcAttr gives the agent its own console window so its output
// stays inspectable without redirection.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_CONSOLE,
	}
}

// redirectOutput is a no-op on Windows; the agent writes to its own console.
func redirectOutput(cmd *exec.Cmd, dataDir string) {}
