// Package supervisor keeps the agent backend alive: it launches the process,
// probes its liveness, terminates its whole tree, and restarts it after a
// crash. All lifecycle paths (user commands, watchdog, shutdown) serialize
// through one mutex guarding the single child slot.
package supervisor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/inkforge/inkforge/internal/agentpath"
	"github.com/inkforge/inkforge/internal/applog"
	"github.com/inkforge/inkforge/internal/constants"
)

// ErrSpawnFailed wraps launch failures surfaced to lifecycle commands.
var ErrSpawnFailed = errors.New("failed to start agent process")

// HealthStatus is the derived status reported by the agent_status operation.
// Running reflects a live agent process, whether held in this supervisor's
// slot or recorded in the pid file by another shell process; Ready
// additionally requires a successful health probe; PID is present only
// while running.
type HealthStatus struct {
	Running bool `json:"running"`
	Ready   bool `json:"ready"`
	PID     *int `json:"pid"`
}

// Options configures a Supervisor. Zero values select production defaults.
type Options struct {
	// DevMode launches the agent from ./agent with the system interpreter
	// and enables the backend's auto-reload flag.
	DevMode bool

	// ResourceDir is the bundled resource directory for packaged builds.
	ResourceDir string

	// Terminator overrides the platform tree terminator (tests).
	Terminator Terminator

	// Grace and Poll override the watchdog timings (tests).
	Grace time.Duration
	Poll  time.Duration

	// ProbeTimeout overrides the health probe connect timeout (tests).
	ProbeTimeout time.Duration
}

// Supervisor owns the agent child-process slot. Exactly one Supervisor
// exists per running application; it is constructed at startup and passed
// by reference to every lifecycle operation and the watchdog.
type Supervisor struct {
	dataDir    string
	resolver   *agentpath.Resolver
	terminator Terminator
	log        *applog.Logger

	devMode      bool
	grace        time.Duration
	poll         time.Duration
	probeTimeout time.Duration

	// spawn is swappable so tests can launch stand-in processes.
	spawn func() (*Handle, error)

	mu    sync.Mutex
	child *Handle
}

// New creates a Supervisor for the given data directory.
func New(dataDir string, opts Options) *Supervisor {
	s := &Supervisor{
		dataDir: dataDir,
		resolver: &agentpath.Resolver{
			DevMode:     opts.DevMode,
			ResourceDir: opts.ResourceDir,
		},
		terminator:   opts.Terminator,
		log:          applog.NewLogger(dataDir),
		devMode:      opts.DevMode,
		grace:        opts.Grace,
		poll:         opts.Poll,
		probeTimeout: opts.ProbeTimeout,
	}
	if s.terminator == nil {
		s.terminator = NewTerminator()
	}
	if s.grace <= 0 {
		s.grace = constants.WatchdogGrace
	}
	if s.poll <= 0 {
		s.poll = constants.WatchdogPoll
	}
	if s.probeTimeout <= 0 {
		s.probeTimeout = constants.HealthProbeTimeout
	}
	s.spawn = s.spawnAgent
	return s
}

// DataDir returns the data directory this supervisor was built around.
func (s *Supervisor) DataDir() string {
	return s.dataDir
}

// Status reports agent liveness combined with a fresh health probe. An
// agent launched by another shell process counts as running: liveness is a
// property of the data directory, not of who holds the handle. The probe
// runs outside the lock because it touches no shared state and may block up
// to the probe timeout.
func (s *Supervisor) Status() HealthStatus {
	s.mu.Lock()
	var status HealthStatus
	if s.child != nil {
		pid := s.child.PID()
		status.Running = true
		status.PID = &pid
	}
	s.mu.Unlock()

	if !status.Running {
		if pid, ok := s.externalPID(); ok {
			status.Running = true
			status.PID = &pid
		}
	}
	if status.Running {
		status.Ready = CheckHealth(s.probeTimeout)
	}
	return status
}

// externalPID reports an agent recorded in the pid file by some shell
// process (possibly this one, before a restart). Stale records for dead
// processes are cleaned up on sight.
func (s *Supervisor) externalPID() (int, bool) {
	pid := readPIDFile(s.dataDir)
	if pid == 0 {
		return 0, false
	}
	if !isProcessRunning(pid) {
		clearPIDFile(s.dataDir, pid)
		return 0, false
	}
	return pid, true
}

// Start launches the agent unless it is already running. The whole
// operation holds the lock so concurrent starts are idempotent.
func (s *Supervisor) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.child != nil {
		return "Agent already running", nil
	}
	if _, ok := s.externalPID(); ok {
		// Another shell process already launched the agent on this data dir.
		return "Agent already running", nil
	}

	child, err := s.spawn()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}
	s.child = child
	s.watchReady(child)
	return fmt.Sprintf("Agent started on port %d", constants.AgentPort), nil
}

// Stop terminates the agent's process tree. Stopping when nothing is
// running is a non-error no-op.
func (s *Supervisor) Stop() (string, error) {
	child := s.take()
	if child == nil {
		pid, ok := s.externalPID()
		if !ok {
			return "Agent not running", nil
		}
		s.terminateExternal(pid)
		_ = s.log.Log(applog.EventStop, fmt.Sprintf("pid=%d", pid))
		return "Agent stopped", nil
	}

	s.terminate(child)
	_ = s.log.Log(applog.EventStop, fmt.Sprintf("pid=%d", child.PID()))
	return "Agent stopped", nil
}

// Restart terminates any running agent and unconditionally launches a new
// one. The spawn happens outside the lock; adopt resolves the rare race
// against a concurrent start.
func (s *Supervisor) Restart() (string, error) {
	if child := s.take(); child != nil {
		s.terminate(child)
	} else if pid, ok := s.externalPID(); ok {
		s.terminateExternal(pid)
	}

	child, err := s.spawn()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}
	s.adopt(child)
	return "Agent restarted", nil
}

// Shutdown synchronously terminates the held agent, guaranteeing no orphaned
// backend survives the host application. Safe to call multiple times.
func (s *Supervisor) Shutdown() {
	if child := s.take(); child != nil {
		s.terminate(child)
		_ = s.log.Log(applog.EventStop, fmt.Sprintf("pid=%d shutdown", child.PID()))
	}
}

// take removes and returns the held handle, or nil. Once taken, a handle is
// owned by the caller for termination and never returns to the slot.
func (s *Supervisor) take() *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	child := s.child
	s.child = nil
	return child
}

// adopt stores a freshly spawned handle. If another operation filled the
// slot while we were spawning unlocked, the existing handle wins and the
// newcomer's tree is torn down to preserve the at-most-one-child invariant.
func (s *Supervisor) adopt(child *Handle) {
	s.mu.Lock()
	if s.child == nil {
		s.child = child
		s.mu.Unlock()
		s.watchReady(child)
		return
	}
	s.mu.Unlock()
	s.terminate(child)
}

// watchReady logs the ready event once the agent first accepts connections.
// The goroutine ends when readiness is observed or the child exits.
func (s *Supervisor) watchReady(child *Handle) {
	go func() {
		ticker := time.NewTicker(s.poll)
		defer ticker.Stop()
		for {
			if CheckHealth(s.probeTimeout) {
				_ = s.log.Log(applog.EventReady, fmt.Sprintf("pid=%d", child.PID()))
				return
			}
			select {
			case <-child.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// terminate tears down a handle's entire process tree and waits for exit.
// Always invoked after the handle has left the slot, so no other component
// can observe a handle mid-termination.
func (s *Supervisor) terminate(child *Handle) {
	pid := child.PID()
	if err := s.terminator.Terminate(pid); err != nil {
		// Best-effort: the direct kill below still runs.
		fmt.Printf("[inkforge] tree terminate pid=%d: %v\n", pid, err)
	}
	_ = child.Kill()
	child.WaitExit()
	clearPIDFile(s.dataDir, pid)
	_ = s.log.Log(applog.EventKill, fmt.Sprintf("pid=%d", pid))
	fmt.Printf("[inkforge] agent stopped (pid=%d)\n", pid)
}

// terminateExternal tears down an agent this process never launched, found
// through the pid file. There is no handle to wait on, so exit is confirmed
// by polling liveness.
func (s *Supervisor) terminateExternal(pid int) {
	if err := s.terminator.Terminate(pid); err != nil {
		fmt.Printf("[inkforge] tree terminate pid=%d: %v\n", pid, err)
	}
	_ = forceKillPID(pid)
	if err := waitPIDGone(pid, s.grace); err != nil {
		fmt.Printf("[inkforge] %v\n", err)
	}
	clearPIDFile(s.dataDir, pid)
	_ = s.log.Log(applog.EventKill, fmt.Sprintf("pid=%d", pid))
	fmt.Printf("[inkforge] agent stopped (pid=%d)\n", pid)
}
