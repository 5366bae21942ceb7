package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/inkforge/inkforge/internal/applog"
	"github.com/inkforge/inkforge/internal/constants"
)

// spawnAgent resolves paths and starts the agent backend as a child process.
// Missing paths are warned about but spawning still proceeds, so the OS
// error names the exact path an operator can fix.
func (s *Supervisor) spawnAgent() (*Handle, error) {
	agentDir := s.resolver.AgentDir()
	interpreter := s.resolver.Interpreter()

	fmt.Printf("[inkforge] resolved agent_dir=%s\n", agentDir)
	fmt.Printf("[inkforge] resolved interpreter=%s\n", interpreter)
	if _, err := os.Stat(agentDir); err != nil {
		fmt.Fprintf(os.Stderr, "[inkforge] agent dir missing: %s\n", agentDir)
	}
	if _, err := os.Stat(interpreter); err != nil {
		fmt.Fprintf(os.Stderr, "[inkforge] interpreter missing: %s\n", interpreter)
	}

	args := []string{
		"-m", "uvicorn", "main:app",
		"--host", "127.0.0.1",
		"--port", strconv.Itoa(constants.AgentPort),
	}
	if s.devMode {
		args = append(args, "--reload")
	}

	cmd := exec.Command(interpreter, args...) //nolint:gosec // G204: interpreter comes from the path resolver, not user input
	cmd.Dir = agentDir
	cmd.Env = append(os.Environ(), constants.EnvDataDir+"="+s.dataDir)

	configureSysProcAttr(cmd)
	redirectOutput(cmd, s.dataDir)

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "[inkforge] failed to start agent: %v\n", err)
		return nil, err
	}

	fmt.Printf("[inkforge] agent spawned (pid=%d)\n", cmd.Process.Pid)
	if err := writePIDFile(s.dataDir, cmd.Process.Pid); err != nil {
		// The agent still runs; only cross-process stop is degraded.
		fmt.Fprintf(os.Stderr, "[inkforge] recording agent pid: %v\n", err)
	}
	_ = s.log.Log(applog.EventSpawn, fmt.Sprintf("pid=%d", cmd.Process.Pid))
	return newHandle(cmd), nil
}
