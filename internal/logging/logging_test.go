package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func parseLine(t *testing.T, buf *bytes.Buffer) Event {
	t.Helper()
	var event Event
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &event); err != nil {
		t.Fatalf("failed to parse output as JSON: %v (output: %s)", err, buf.String())
	}
	return event
}

func TestLoggerCreation(t *testing.T) {
	logger := New("test-component")

	if logger.component != "test-component" {
		t.Errorf("expected component 'test-component', got '%s'", logger.component)
	}
}

func TestLoggerWithReplay(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("decoder", &buf).WithReplay("game1.rep")

	logger.Info("decode", nil)

	event := parseLine(t, &buf)
	if event.Replay != "game1.rep" {
		t.Errorf("expected replay 'game1.rep', got '%s'", event.Replay)
	}
	if event.Component != "decoder" {
		t.Errorf("expected component 'decoder', got '%s'", event.Component)
	}
}

func TestEventSerialization(t *testing.T) {
	event := Event{
		Timestamp: "2024-01-01T00:00:00Z",
		Level:     LevelInfo,
		Component: "test",
		Event:     "test_event",
		Replay:    "game1.rep",
		Duration:  100,
		Error:     "",
		Extra: map[string]interface{}{
			"key": "value",
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	// Verify JSON structure
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}

	if parsed["level"] != "info" {
		t.Errorf("expected level 'info', got '%v'", parsed["level"])
	}
	if parsed["component"] != "test" {
		t.Errorf("expected component 'test', got '%v'", parsed["component"])
	}
	if parsed["duration_ms"].(float64) != 100 {
		t.Errorf("expected duration_ms 100, got '%v'", parsed["duration_ms"])
	}
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("api", &buf)

	logger.Debug("upload_received", map[string]interface{}{"bytes": 1024})

	event := parseLine(t, &buf)
	if event.Level != LevelDebug {
		t.Errorf("expected level 'debug', got '%s'", event.Level)
	}
	if event.Extra["bytes"].(float64) != 1024 {
		t.Errorf("expected 1024 bytes extra, got '%v'", event.Extra["bytes"])
	}
}

func TestWarnCarriesError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("batch", &buf)

	logger.Warn("decode_failed", nil, context.DeadlineExceeded)

	event := parseLine(t, &buf)
	if event.Level != LevelWarn {
		t.Errorf("expected level 'warn', got '%s'", event.Level)
	}
	if event.Error == "" {
		t.Error("expected error message to be set")
	}
}

func TestTimedEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("api", &buf)

	logger.TimedEvent("request", time.Now().Add(-500*time.Millisecond), map[string]interface{}{
		"path": "/api/v1/replays",
	})

	event := parseLine(t, &buf)
	if event.Level != LevelInfo {
		t.Errorf("expected level 'info', got '%s'", event.Level)
	}
	if event.Duration < 500 {
		t.Errorf("expected duration >= 500ms, got %d", event.Duration)
	}
	if event.Extra["path"] != "/api/v1/replays" {
		t.Errorf("expected path extra, got '%v'", event.Extra["path"])
	}
}

func TestDecodeEventSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("decoder", &buf)

	DecodeEvent(logger, "game1.rep", "high", 42, time.Now(), nil)

	event := parseLine(t, &buf)
	if event.Level != LevelInfo {
		t.Errorf("expected level 'info', got '%s'", event.Level)
	}
	if event.Event != "decode" {
		t.Errorf("expected event 'decode', got '%s'", event.Event)
	}
	if event.Replay != "game1.rep" {
		t.Errorf("expected replay 'game1.rep', got '%s'", event.Replay)
	}
	if event.Extra["reliability"] != "high" {
		t.Errorf("expected reliability 'high', got '%v'", event.Extra["reliability"])
	}
	if event.Extra["commands"].(float64) != 42 {
		t.Errorf("expected 42 commands, got '%v'", event.Extra["commands"])
	}
}

func TestDecodeEventError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("decoder", &buf)

	DecodeEvent(logger, "broken.rep", "low", 0, time.Now(), errors.New("not a recognized replay file"))

	event := parseLine(t, &buf)
	if event.Level != LevelError {
		t.Errorf("expected level 'error', got '%s'", event.Level)
	}
	if event.Error == "" {
		t.Error("expected error message to be set")
	}
}
