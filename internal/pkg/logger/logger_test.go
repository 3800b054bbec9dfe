package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newBuffered(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{
		Level:       level,
		Format:      "json",
		Output:      &buf,
		ServiceName: "vidmark-test",
	}), &buf
}

func TestLoggerOutput(t *testing.T) {
	log, buf := newBuffered("debug")

	log.Info("job received", "video_id", "v1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if entry["msg"] != "job received" {
		t.Errorf("expected msg='job received', got %v", entry["msg"])
	}
	if entry["video_id"] != "v1" {
		t.Errorf("expected video_id='v1', got %v", entry["video_id"])
	}
	if entry["service"] != "vidmark-test" {
		t.Errorf("expected service='vidmark-test', got %v", entry["service"])
	}
	if ts, _ := entry["time"].(string); !strings.HasSuffix(ts, "Z") {
		t.Errorf("expected UTC timestamp, got %v", entry["time"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "text", Output: &buf})

	log.Info("hello", "k", "v")

	if !strings.Contains(buf.String(), "k=v") {
		t.Errorf("expected text output, got: %s", buf.String())
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		logFn     func(*Logger)
		shouldLog bool
	}{
		{"info level logs info", "info", func(l *Logger) { l.Info("test") }, true},
		{"info level does not log debug", "info", func(l *Logger) { l.Debug("test") }, false},
		{"debug level logs debug", "debug", func(l *Logger) { l.Debug("test") }, true},
		{"error level does not log warn", "error", func(l *Logger) { l.Warn("test") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := newBuffered(tt.level)
			tt.logFn(log)

			if hasOutput := buf.Len() > 0; hasOutput != tt.shouldLog {
				t.Errorf("expected shouldLog=%v, got hasOutput=%v", tt.shouldLog, hasOutput)
			}
		})
	}
}

func TestChildLoggers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*Logger) *Logger
		want string
	}{
		{"request id", func(l *Logger) *Logger { return l.WithRequestID("req-123") }, `"request_id":"req-123"`},
		{"job id", func(l *Logger) *Logger { return l.WithJobID("v1") }, `"job_id":"v1"`},
		{"component", func(l *Logger) *Logger { return l.WithComponent("processor") }, `"component":"processor"`},
		{"stage", func(l *Logger) *Logger { return l.WithStage("transform") }, `"stage":"transform"`},
		{"error", func(l *Logger) *Logger { return l.WithError(context.DeadlineExceeded) }, "deadline exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := newBuffered("info")
			tt.fn(log).Info("test message")

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected output to contain %s, got: %s", tt.want, buf.String())
			}
		})
	}
}

func TestWithErrorNil(t *testing.T) {
	log, _ := newBuffered("info")
	if log.WithError(nil) != log {
		t.Error("WithError(nil) should return same logger")
	}
}

func TestFromContext(t *testing.T) {
	log, buf := newBuffered("info")

	ctx := ContextWithRequestID(context.Background(), "req-abc")
	ctx = ContextWithJobID(ctx, "job-xyz")

	log.FromContext(ctx).Info("test message")

	output := buf.String()
	if !strings.Contains(output, "req-abc") {
		t.Errorf("expected output to contain request_id, got: %s", output)
	}
	if !strings.Contains(output, "job-xyz") {
		t.Errorf("expected output to contain job_id, got: %s", output)
	}
}

func TestDiscard(t *testing.T) {
	// must not panic
	Discard().WithJobID("v1").Error("dropped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"DEBUG", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if level := parseLevel(tt.input); level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %s, expected %s", tt.input, level.String(), tt.expected)
			}
		})
	}
}
