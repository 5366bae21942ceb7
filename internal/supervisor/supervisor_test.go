package supervisor

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/inkforge/inkforge/internal/applog"
	"github.com/inkforge/inkforge/internal/constants"
)

// noopTerminator leaves tree teardown to the direct kill that terminate()
// always performs. Test children are plain sleeps with no descendants and
// no private process group, so group signaling would hit the test runner.
type noopTerminator struct {
	calls atomic.Int32
}

func (n *noopTerminator) Terminate(pid int) error {
	n.calls.Add(1)
	return nil
}

// newTestSupervisor returns a supervisor whose spawn launches a long sleep
// and whose terminator is inert. The spawn counter tracks launch attempts.
func newTestSupervisor(t *testing.T) (*Supervisor, *atomic.Int32) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test children use sleep(1)")
	}

	s := New(t.TempDir(), Options{
		Terminator: &noopTerminator{},
		Grace:      10 * time.Millisecond,
		Poll:       20 * time.Millisecond,
	})

	var spawns atomic.Int32
	s.spawn = func() (*Handle, error) {
		cmd := exec.Command("sleep", "60")
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		spawns.Add(1)
		return newHandle(cmd), nil
	}

	t.Cleanup(s.Shutdown)
	return s, &spawns
}

func TestStopWhenNotRunning(t *testing.T) {
	s, _ := newTestSupervisor(t)

	msg, err := s.Stop()
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if msg != "Agent not running" {
		t.Errorf("Stop = %q, want not-running message", msg)
	}
	if st := s.Status(); st.Running {
		t.Error("status reports running after stop on empty slot")
	}
}

func TestStartWhenAlreadyRunning(t *testing.T) {
	s, spawns := newTestSupervisor(t)

	if _, err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	first := s.Status()
	if !first.Running || first.PID == nil {
		t.Fatalf("expected running status with pid, got %+v", first)
	}

	msg, err := s.Start()
	if err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	if msg != "Agent already running" {
		t.Errorf("second Start = %q, want already-running message", msg)
	}
	if got := spawns.Load(); got != 1 {
		t.Errorf("expected 1 spawn, got %d", got)
	}
	if second := s.Status(); *second.PID != *first.PID {
		t.Errorf("pid changed across idempotent start: %d -> %d", *first.PID, *second.PID)
	}
}

func TestStartFailureLeavesSlotEmpty(t *testing.T) {
	s, _ := newTestSupervisor(t)
	s.spawn = func() (*Handle, error) {
		return nil, fmt.Errorf("exec format error")
	}

	if _, err := s.Start(); err == nil {
		t.Fatal("expected spawn error")
	}
	if st := s.Status(); st.Running {
		t.Error("slot occupied after failed spawn")
	}

	// A retry must be possible.
	s.spawn = func() (*Handle, error) {
		cmd := exec.Command("sleep", "60")
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		return newHandle(cmd), nil
	}
	if _, err := s.Start(); err != nil {
		t.Fatalf("retry Start failed: %v", err)
	}
}

func TestRestartReplacesProcess(t *testing.T) {
	s, _ := newTestSupervisor(t)

	if _, err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	oldPID := *s.Status().PID

	msg, err := s.Restart()
	if err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if msg != "Agent restarted" {
		t.Errorf("Restart = %q", msg)
	}

	st := s.Status()
	if !st.Running {
		t.Fatal("not running after restart")
	}
	if *st.PID == oldPID {
		t.Errorf("restart kept pid %d", oldPID)
	}
}

func TestRestartWhenStopped(t *testing.T) {
	s, _ := newTestSupervisor(t)

	// Restart with an empty slot still spawns unconditionally.
	if _, err := s.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if st := s.Status(); !st.Running {
		t.Error("not running after restart from stopped")
	}
}

func TestAtMostOneHandleUnderConcurrency(t *testing.T) {
	s, spawns := newTestSupervisor(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				_, _ = s.Start()
			case 1:
				_, _ = s.Restart()
			case 2:
				_, _ = s.Stop()
			}
		}(i)
	}
	wg.Wait()

	// Whatever the interleaving, the slot holds at most one live handle and
	// every spawned process beyond it was torn down by adopt/terminate.
	s.mu.Lock()
	child := s.child
	s.mu.Unlock()

	if child != nil && child.Exited() {
		t.Error("slot holds an exited handle")
	}
	if spawns.Load() == 0 {
		t.Error("expected at least one spawn across the interleaving")
	}
}

func TestWatchdogRecoversCrash(t *testing.T) {
	s, spawns := newTestSupervisor(t)

	if _, err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	oldPID := *s.Status().PID

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Watchdog(ctx)

	// Simulate a crash by killing the child directly.
	s.mu.Lock()
	crashed := s.child
	s.mu.Unlock()
	_ = crashed.Kill()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := s.Status()
		if st.Running && *st.PID != oldPID {
			if spawns.Load() < 2 {
				t.Errorf("expected respawn, spawn count %d", spawns.Load())
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("watchdog did not respawn within deadline")
}

func TestWatchdogLeavesStoppedAgentAlone(t *testing.T) {
	s, spawns := newTestSupervisor(t)

	if _, err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Watchdog(ctx)

	// Several poll intervals pass; the watchdog must not resurrect a
	// deliberately stopped agent.
	time.Sleep(150 * time.Millisecond)

	if st := s.Status(); st.Running {
		t.Error("watchdog resurrected a stopped agent")
	}
	if got := spawns.Load(); got != 1 {
		t.Errorf("spawn count = %d, want 1", got)
	}
}

func TestWatchdogRetriesFailedRespawn(t *testing.T) {
	s, spawns := newTestSupervisor(t)

	if _, err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// First respawn attempts fail, later ones succeed.
	var attempts atomic.Int32
	realSpawn := s.spawn
	s.spawn = func() (*Handle, error) {
		if attempts.Add(1) <= 2 {
			return nil, fmt.Errorf("transient failure")
		}
		return realSpawn()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Watchdog(ctx)

	s.mu.Lock()
	crashed := s.child
	s.mu.Unlock()
	_ = crashed.Kill()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Status().Running {
			if attempts.Load() < 3 {
				t.Errorf("expected at least 3 attempts, got %d", attempts.Load())
			}
			if spawns.Load() != 2 {
				t.Errorf("spawn count = %d, want 2", spawns.Load())
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("watchdog never recovered after transient spawn failures")
}

func TestShutdownIsIdempotent(t *testing.T) {
	s, _ := newTestSupervisor(t)

	if _, err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Shutdown()
	s.Shutdown() // second call must be a no-op

	if st := s.Status(); st.Running {
		t.Error("running after shutdown")
	}
}

func TestStatusEmptySlot(t *testing.T) {
	s, _ := newTestSupervisor(t)

	st := s.Status()
	if st.Running || st.Ready || st.PID != nil {
		t.Errorf("expected empty status, got %+v", st)
	}
}

func TestReadyEventLogged(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test children use sleep(1)")
	}

	// Stand in for the agent binding its port.
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", constants.AgentPort))
	if err != nil {
		t.Skipf("agent port unavailable: %v", err)
	}
	defer ln.Close()

	dir := t.TempDir()
	s := New(dir, Options{
		Terminator: &noopTerminator{},
		Grace:      10 * time.Millisecond,
		Poll:       20 * time.Millisecond,
	})
	s.spawn = func() (*Handle, error) {
		cmd := exec.Command("sleep", "60")
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		return newHandle(cmd), nil
	}
	t.Cleanup(s.Shutdown)

	if _, err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events, err := applog.ReadEvents(dir)
		if err != nil {
			t.Fatalf("reading events: %v", err)
		}
		for _, e := range events {
			if e.Type == applog.EventReady {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("ready event never logged while port was accepting connections")
}
