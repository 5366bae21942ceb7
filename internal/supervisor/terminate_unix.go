//go:build !windows

package supervisor

import (
	"syscall"
)

// groupTerminator signals the agent's process group. The launcher started
// the agent with Setpgid, so every process sharing the group receives the
// signal (negative-PID convention).
type groupTerminator struct{}

// NewTerminator returns the platform tree terminator.
func NewTerminator() Terminator {
	return groupTerminator{}
}

func (groupTerminator) Terminate(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGTERM)
	if err == syscall.ESRCH {
		return nil // Group already gone; terminating a dead tree is a no-op.
	}
	return err
}
