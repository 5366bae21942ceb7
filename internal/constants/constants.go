// Package constants defines shared constant values used throughout Inkforge.
// Centralizing these magic strings improves maintainability and consistency.
package constants

import "time"

// AgentPort is the fixed TCP port the agent backend binds on 127.0.0.1.
const AgentPort = 8765

// Timing constants for supervision and health probing.
const (
	// HealthProbeTimeout bounds the TCP connect used to decide readiness.
	HealthProbeTimeout = 500 * time.Millisecond

	// WatchdogGrace is how long the watchdog waits after startup before
	// its first check, to avoid racing the initial launch.
	WatchdogGrace = 5 * time.Second

	// WatchdogPoll is the interval between watchdog crash checks.
	WatchdogPoll = 3 * time.Second

	// InstanceLockTimeout is how long we wait for the data-dir lock before
	// concluding another Inkforge instance owns the agent.
	InstanceLockTimeout = 2 * time.Second
)

// Environment variable names shared with the agent backend.
const (
	// EnvDataDir overrides the data directory and is injected into the
	// agent's environment so both sides agree on where state lives.
	EnvDataDir = "INKFORGE_DATA_DIR"

	// EnvDevMode forces development-mode path resolution when set to "1".
	EnvDevMode = "INKFORGE_DEV"
)

// File and directory names under the data directory.
const (
	// FileDatabase is the SQLite database holding project records.
	FileDatabase = "inkforge.db"

	// FileAgentLog receives the agent's stdout/stderr on POSIX systems.
	FileAgentLog = "agent.log"

	// FileInstanceLock is the flock target guarding single-instance startup.
	FileInstanceLock = "inkforge.lock"

	// FileSettings is the optional TOML settings file.
	FileSettings = "settings.toml"

	// FileAgentPID records the live agent's pid so any shell process can
	// find and stop an agent launched by another one.
	FileAgentPID = "agent.pid"

	// DirLogs holds the shell's own event log.
	DirLogs = "logs"
)

// Agent launch constants.
const (
	// DirAgent is the agent source tree name, both in a dev checkout and
	// inside bundled resources.
	DirAgent = "agent"

	// DirPythonEmbed is the bundled interpreter directory name.
	DirPythonEmbed = "python_embed"

	// DirResources is the nested resource folder some bundle layouts use.
	DirResources = "resources"
)
