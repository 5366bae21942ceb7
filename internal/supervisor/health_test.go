package supervisor

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/inkforge/inkforge/internal/constants"
)

func TestCheckHealthTransitions(t *testing.T) {
	addr := fmt.Sprintf("127.0.0.1:%d", constants.AgentPort)

	// Nothing listening: the probe reports false without erroring.
	if CheckHealth(100 * time.Millisecond) {
		t.Skipf("something is already listening on %s", addr)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		t.Skipf("cannot bind %s: %v", addr, err)
	}
	defer ln.Close()

	if !CheckHealth(500 * time.Millisecond) {
		t.Error("probe reported not-ready with a live listener")
	}

	ln.Close()
	if CheckHealth(100 * time.Millisecond) {
		t.Error("probe reported ready after listener closed")
	}
}

func TestCheckHealthBoundedBlocking(t *testing.T) {
	start := time.Now()
	CheckHealth(100 * time.Millisecond)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("probe blocked %v, want bounded by timeout", elapsed)
	}
}
