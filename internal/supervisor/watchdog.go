package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/inkforge/inkforge/internal/applog"
)

// Watchdog polls for agent crashes and respawns. It runs until ctx is
// cancelled and takes no action while the slot is empty: a deliberately
// stopped agent must not be resurrected.
func (s *Supervisor) Watchdog(ctx context.Context) {
	// Initial grace period avoids racing the first launch.
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.grace):
	}

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkOnce()
		}
	}
}

// checkOnce performs a single crash check and respawn attempt. The lock is
// held only for the slot read/clear; the spawn runs unlocked so a user stop
// or restart cannot deadlock against a slow launch.
func (s *Supervisor) checkOnce() {
	s.mu.Lock()
	if s.child == nil || !s.child.Exited() {
		s.mu.Unlock()
		return
	}
	crashed := s.child
	s.child = nil
	s.mu.Unlock()

	clearPIDFile(s.dataDir, crashed.PID())
	fmt.Printf("[inkforge] agent crashed (pid=%d), restarting...\n", crashed.PID())
	_ = s.log.Log(applog.EventCrash, fmt.Sprintf("pid=%d", crashed.PID()))

	child, err := s.spawn()
	if err != nil {
		// Slot stays empty; the next poll cycle retries.
		_ = s.log.Log(applog.EventRespawnFailed, err.Error())
		return
	}
	s.adopt(child)
	_ = s.log.Log(applog.EventRespawn, fmt.Sprintf("pid=%d", child.PID()))
}
