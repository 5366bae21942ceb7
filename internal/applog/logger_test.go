package applog

import (
	"testing"
	"time"
)

func TestLogAndReadEvents(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	if err := logger.Log(EventSpawn, "pid=4242"); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if err := logger.Log(EventCrash, "pid=4242"); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if err := logger.Log(EventRespawn, "pid=4300"); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := ReadEvents(dir)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Type != EventSpawn || events[1].Type != EventCrash || events[2].Type != EventRespawn {
		t.Errorf("unexpected event order: %v %v %v", events[0].Type, events[1].Type, events[2].Type)
	}
	if events[2].Context != "pid=4300" {
		t.Errorf("expected context pid=4300, got %q", events[2].Context)
	}
}

func TestReadEventsNoFile(t *testing.T) {
	events, err := ReadEvents(t.TempDir())
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if events != nil {
		t.Errorf("expected nil events for missing log, got %v", events)
	}
}

func TestTailEvents(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	for i := 0; i < 5; i++ {
		if err := logger.Log(EventSpawn, ""); err != nil {
			t.Fatal(err)
		}
	}

	tail, err := TailEvents(dir, 2)
	if err != nil {
		t.Fatalf("TailEvents failed: %v", err)
	}
	if len(tail) != 2 {
		t.Errorf("expected 2 events, got %d", len(tail))
	}
}

func TestParseLogLineRoundTrip(t *testing.T) {
	e := Event{
		Timestamp: time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC),
		Type:      EventKill,
		Context:   "pid=99",
	}

	parsed, err := parseLogLine(formatLogLine(e))
	if err != nil {
		t.Fatalf("parseLogLine failed: %v", err)
	}
	if parsed.Type != e.Type || parsed.Context != e.Context {
		t.Errorf("round trip mismatch: got %+v, want %+v", parsed, e)
	}
	if !parsed.Timestamp.Equal(e.Timestamp) {
		t.Errorf("timestamp mismatch: got %v, want %v", parsed.Timestamp, e.Timestamp)
	}
}
