//go:build windows

package supervisor

import (
	"io"
	"os/exec"
	"strconv"
)

// taskkillTerminator shells out to taskkill with force and tree flags.
// The base Windows kill call only affects a single process, so taskkill /T
// is the primary mechanism for taking down uvicorn's worker tree.
type taskkillTerminator struct{}

// NewTerminator returns the platform tree terminator.
func NewTerminator() Terminator {
	return taskkillTerminator{}
}

func (taskkillTerminator) Terminate(pid int) error {
	cmd := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid))
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}
