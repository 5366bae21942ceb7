package supervisor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/inkforge/inkforge/internal/constants"
)

// The pid file records the live agent's pid under the data directory. It is
// what lets a shell process stop or refuse to double-start an agent that a
// different shell process launched: the in-memory handle dies with its
// launcher, the pid file does not.

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, constants.FileAgentPID)
}

func writePIDFile(dataDir string, pid int) error {
	return os.WriteFile(pidFilePath(dataDir), []byte(strconv.Itoa(pid)+"\n"), 0600)
}

// readPIDFile returns the recorded pid, or 0 when no valid record exists.
func readPIDFile(dataDir string) int {
	data, err := os.ReadFile(pidFilePath(dataDir)) //nolint:gosec // G304: path is constructed from the resolved data dir
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	return pid
}

// clearPIDFile removes the record when it names the given pid. A record
// written by a newer launch is left alone.
func clearPIDFile(dataDir string, pid int) {
	if readPIDFile(dataDir) == pid {
		_ = os.Remove(pidFilePath(dataDir))
	}
}

// waitPIDGone polls until the process disappears or the timeout elapses.
// External agents cannot be waited on directly; they are not our children.
func waitPIDGone(pid int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !isProcessRunning(pid) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("process %d still running after %s", pid, timeout)
}
