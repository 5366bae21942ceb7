//go:build !windows

package supervisor

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestGroupTerminatorKillsWholeTree(t *testing.T) {
	// Shell parent spawns a background sleep and reports its pid, giving a
	// two-process tree in one process group.
	cmd := exec.Command("sh", "-c", "sleep 60 & echo $!; wait")
	var out bytes.Buffer
	cmd.Stdout = &out
	configureSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		t.Fatalf("starting tree: %v", err)
	}
	h := newHandle(cmd)

	// Wait for the grandchild pid to appear on stdout.
	var grandchild int
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if line := strings.TrimSpace(out.String()); line != "" {
			pid, err := strconv.Atoi(strings.Fields(line)[0])
			if err == nil {
				grandchild = pid
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	if grandchild == 0 {
		h.Kill()
		t.Fatal("never observed grandchild pid")
	}

	if err := (groupTerminator{}).Terminate(h.PID()); err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}
	_ = h.Kill()
	h.WaitExit()

	// Both the parent and the background sleep must be gone.
	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := syscall.Kill(grandchild, 0); err == syscall.ESRCH {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("grandchild %d survived tree termination", grandchild)
}

func TestGroupTerminatorDeadTreeIsNoop(t *testing.T) {
	cmd := exec.Command("sleep", "0.05")
	configureSysProcAttr(cmd)
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting child: %v", err)
	}
	h := newHandle(cmd)
	h.WaitExit()

	// Terminating an already-dead tree is a no-op, not an error.
	if err := (groupTerminator{}).Terminate(h.PID()); err != nil {
		t.Errorf("Terminate on dead tree = %v, want nil", err)
	}
	if err := h.Kill(); err != nil {
		t.Errorf("Kill on dead handle = %v, want nil", err)
	}
}
