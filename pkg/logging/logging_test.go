package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		result := test.level.String()
		if result != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(999), slog.LevelInfo},
	}

	for _, test := range tests {
		result := test.level.SlogLevel()
		if result != test.expected {
			t.Errorf("LogLevel(%d).SlogLevel() = %v, expected %v", test.level, result, test.expected)
		}
	}
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Info("test-subsystem", "test message %d", 42)

	output := buf.String()
	if !strings.Contains(output, "test message 42") {
		t.Errorf("Expected log message in CLI output, got %q", output)
	}
	if !strings.Contains(output, "subsystem=test-subsystem") {
		t.Errorf("Expected subsystem in CLI output, got %q", output)
	}
}

func TestCLILevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("test", "debug message")
	Info("test", "info message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered out at INFO level")
	}
	if !strings.Contains(output, "info message") {
		t.Error("Info message should appear at INFO level")
	}
}

func TestCLIErrorAttribute(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("Export", errors.New("disk full"), "write failed")

	output := buf.String()
	if !strings.Contains(output, "disk full") {
		t.Errorf("Expected error text in output, got %q", output)
	}
}

func TestShellMode(t *testing.T) {
	entries := InitForShell(LevelInfo)
	defer CloseShellChannel()

	Debug("Shell", "hidden")
	Warn("Shell", "visible %s", "warning")

	select {
	case entry := <-entries:
		if entry.Level != LevelWarn {
			t.Errorf("expected WARN entry, got %s", entry.Level)
		}
		if entry.Message != "visible warning" {
			t.Errorf("unexpected message %q", entry.Message)
		}
		if entry.Subsystem != "Shell" {
			t.Errorf("unexpected subsystem %q", entry.Subsystem)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a log entry on the shell channel")
	}

	select {
	case entry := <-entries:
		t.Fatalf("debug entry should have been filtered, got %v", entry)
	default:
	}
}

func TestCloseShellChannel(t *testing.T) {
	entries := InitForShell(LevelDebug)
	CloseShellChannel()

	if _, ok := <-entries; ok {
		t.Error("expected shell channel to be closed")
	}

	// Logging after close must not panic.
	Info("Shell", "after close")
}

func TestLogEntryString(t *testing.T) {
	entry := LogEntry{
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     LevelError,
		Subsystem: "Controller",
		Message:   "login failed",
		Err:       errors.New("401"),
	}

	got := entry.String()
	if got != "03:04:05 [ERROR] Controller: login failed: 401" {
		t.Errorf("unexpected entry string %q", got)
	}
}

func TestCloseShellChannelRestoresCLILevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)
	InitForShell(LevelDebug)
	CloseShellChannel()

	Info("Shell", "info after shell")
	Warn("Shell", "warning after shell")

	output := buf.String()
	if strings.Contains(output, "info after shell") {
		t.Errorf("info entry should stay filtered at WARN level, got %q", output)
	}
	if !strings.Contains(output, "warning after shell") {
		t.Errorf("expected warning in restored CLI output, got %q", output)
	}
}
