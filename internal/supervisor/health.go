package supervisor

import (
	"fmt"
	"net"
	"time"

	"github.com/inkforge/inkforge/internal/constants"
)

// CheckHealth reports whether the agent is accepting TCP connections on its
// fixed port. This is deliberately a liveness approximation, not an
// application-level readiness check: a refused, timed-out, or otherwise
// failed connect is a normal transient state reported as false, never an
// error. The call blocks at most timeout and has no side effects.
func CheckHealth(timeout time.Duration) bool {
	addr := fmt.Sprintf("127.0.0.1:%d", constants.AgentPort)
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
