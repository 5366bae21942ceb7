package supervisor

import (
	"os/exec"
)

// Handle is the supervisor's sole reference to a live agent process. It can
// answer "has this exited?" without blocking and carries the right to
// request termination. A handle taken for termination is never reused.
type Handle struct {
	cmd  *exec.Cmd
	done chan struct{} // closed once the process has been reaped
}

// newHandle wraps a started command and reaps it in the background so exit
// can be observed without blocking and no zombie is left behind.
func newHandle(cmd *exec.Cmd) *Handle {
	h := &Handle{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		_ = cmd.Wait()
		close(h.done)
	}()
	return h
}

// PID returns the OS process identifier.
func (h *Handle) PID() int {
	return h.cmd.Process.Pid
}

// Exited reports whether the process has exited, without blocking.
func (h *Handle) Exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// WaitExit blocks until the process has been reaped.
func (h *Handle) WaitExit() {
	<-h.done
}

// Kill requests direct termination of the process itself (not its tree).
// Killing an already-dead process is a no-op, not an error.
func (h *Handle) Kill() error {
	err := h.cmd.Process.Kill()
	if err != nil && h.Exited() {
		return nil
	}
	return err
}
