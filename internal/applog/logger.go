// Package applog provides centralized logging for agent lifecycle events.
package applog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/inkforge/inkforge/internal/constants"
)

// EventType represents the type of agent lifecycle event.
type EventType string

const (
	// EventSpawn indicates the agent process was started.
	EventSpawn EventType = "spawn"
	// EventReady indicates the agent began accepting connections.
	EventReady EventType = "ready"
	// EventStop indicates the agent was stopped on request.
	EventStop EventType = "stop"
	// EventKill indicates a process tree was terminated.
	EventKill EventType = "kill"
	// EventCrash indicates the agent exited unexpectedly.
	EventCrash EventType = "crash"
	// EventRespawn indicates the watchdog restarted the agent.
	EventRespawn EventType = "respawn"
	// EventRespawnFailed indicates a watchdog restart attempt failed.
	EventRespawnFailed EventType = "respawn_failed"
)

// Event represents a single agent lifecycle event.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Context   string // Additional context (pid, error message, etc.)
}

// Logger appends events to the shell event log under the data directory.
type Logger struct {
	logPath string
	mu      sync.Mutex
}

// logPath returns the path to the shell log file.
func logPath(dataDir string) string {
	return filepath.Join(dataDir, constants.DirLogs, "shell.log")
}

// NewLogger creates a Logger writing under the given data directory.
func NewLogger(dataDir string) *Logger {
	return &Logger{logPath: logPath(dataDir)}
}

// LogEvent logs a single event.
func (l *Logger) LogEvent(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.logPath), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(l.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLogLine(event) + "\n"); err != nil {
		return fmt.Errorf("writing log line: %w", err)
	}
	return nil
}

// Log is a convenience method that creates an Event and logs it.
// Logging is best-effort for callers that cannot act on a failure.
func (l *Logger) Log(eventType EventType, context string) error {
	return l.LogEvent(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Context:   context,
	})
}

// formatLogLine formats an event as a human-readable log line.
// Format: 2026-08-23 15:30:45 [spawn] pid=4242
func formatLogLine(e Event) string {
	ts := e.Timestamp.Format("2006-01-02 15:04:05")

	var detail string
	switch e.Type {
	case EventSpawn:
		detail = "agent spawned"
	case EventReady:
		detail = "agent ready"
	case EventStop:
		detail = "agent stopped"
	case EventKill:
		detail = "process tree terminated"
	case EventCrash:
		detail = "agent exited unexpectedly"
	case EventRespawn:
		detail = "agent respawned"
	case EventRespawnFailed:
		detail = "respawn failed"
	default:
		detail = string(e.Type)
	}
	if e.Context != "" {
		detail += fmt.Sprintf(" (%s)", e.Context)
	}

	return fmt.Sprintf("%s [%s] %s", ts, e.Type, detail)
}

// ReadEvents reads all events from the log file.
func ReadEvents(dataDir string) ([]Event, error) {
	content, err := os.ReadFile(logPath(dataDir)) //nolint:gosec // G304: path is constructed from the resolved data dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No log file yet
		}
		return nil, fmt.Errorf("reading log file: %w", err)
	}

	var events []Event
	for _, line := range strings.Split(string(content), "\n") {
		if line == "" {
			continue
		}
		event, err := parseLogLine(line)
		if err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}
	return events, nil
}

// TailEvents returns the last n events from the log.
func TailEvents(dataDir string, n int) ([]Event, error) {
	events, err := ReadEvents(dataDir)
	if err != nil {
		return nil, err
	}
	if len(events) <= n {
		return events, nil
	}
	return events[len(events)-n:], nil
}

// parseLogLine parses a single log line back into an Event.
// Format: 2026-08-23 15:30:45 [spawn] agent spawned (pid=4242)
func parseLogLine(line string) (Event, error) {
	var event Event

	if len(line) < 19 {
		return event, fmt.Errorf("line too short")
	}
	ts, err := time.Parse("2006-01-02 15:04:05", line[:19])
	if err != nil {
		return event, fmt.Errorf("parsing timestamp: %w", err)
	}
	event.Timestamp = ts

	rest := line[20:]
	if len(rest) < 3 || rest[0] != '[' {
		return event, fmt.Errorf("missing event type")
	}
	closeBracket := strings.IndexByte(rest, ']')
	if closeBracket < 0 {
		return event, fmt.Errorf("unclosed bracket")
	}
	event.Type = EventType(rest[1:closeBracket])

	// Context, when present, is the trailing parenthesized segment.
	rest = rest[closeBracket+1:]
	if open := strings.LastIndexByte(rest, '('); open >= 0 && strings.HasSuffix(rest, ")") {
		event.Context = rest[open+1 : len(rest)-1]
	}

	return event, nil
}
