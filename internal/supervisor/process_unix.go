//go:build !windows

package supervisor

import "syscall"

// isProcessRunning checks if a process with the given PID exists.
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}

	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}

	// EPERM means process exists but we don't have permission to signal it.
	return err == syscall.EPERM
}

// forceKillPID sends SIGKILL to a single process by pid. Used against
// external agents where no handle exists for a direct kill.
func forceKillPID(pid int) error {
	err := syscall.Kill(pid, syscall.SIGKILL)
	if err == syscall.ESRCH {
		return nil
	}
	return err
}
