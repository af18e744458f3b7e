package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to INFO for unknown
	}
}

// LogEntry is the structured log entry delivered to the interactive shell.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

// String renders the entry as a single line for display above the shell prompt.
func (e LogEntry) String() string {
	line := fmt.Sprintf("%s [%s] %s: %s", e.Timestamp.Format("15:04:05"), e.Level, e.Subsystem, e.Message)
	if e.Err != nil {
		line += ": " + e.Err.Error()
	}
	return line
}

type mode int

const (
	modeCLI mode = iota
	modeShell
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	currentMode   mode
	shellLevel    LogLevel
	shellChannel  chan LogEntry

	// cliLevel and cliOutput are restored when the shell closes.
	cliLevel  = LevelInfo
	cliOutput io.Writer = os.Stderr
)

const shellChannelBufferSize = 256

// InitForCLI initializes the logging system for CLI mode. Entries at or above
// filterLevel are written to output through a slog text handler.
func InitForCLI(filterLevel LogLevel, output io.Writer) {
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: filterLevel.SlogLevel()})

	mu.Lock()
	defer mu.Unlock()
	closeShellChannelLocked()
	currentMode = modeCLI
	cliLevel = filterLevel
	cliOutput = output
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// InitForShell initializes the logging system for the interactive shell.
// Entries at or above filterLevel are delivered on the returned channel; the
// shell event loop prints them so they never interleave with the prompt.
func InitForShell(filterLevel LogLevel) <-chan LogEntry {
	mu.Lock()
	defer mu.Unlock()
	closeShellChannelLocked()
	currentMode = modeShell
	shellLevel = filterLevel
	shellChannel = make(chan LogEntry, shellChannelBufferSize)
	// Direct slog calls made while the shell runs are discarded.
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(defaultLogger)
	return shellChannel
}

// CloseShellChannel closes the shell log channel and drops back to CLI mode
// with the level and output of the last InitForCLI. Should be called when
// the shell exits.
func CloseShellChannel() {
	mu.Lock()
	defer mu.Unlock()
	closeShellChannelLocked()
	currentMode = modeCLI
	defaultLogger = slog.New(slog.NewTextHandler(cliOutput, &slog.HandlerOptions{Level: cliLevel.SlogLevel()}))
	slog.SetDefault(defaultLogger)
}

func closeShellChannelLocked() {
	if shellChannel != nil {
		close(shellChannel)
		shellChannel = nil
	}
}

func logInternal(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	if currentMode == modeShell {
		if level < shellLevel || shellChannel == nil {
			return
		}
		entry := LogEntry{
			Timestamp: time.Now(),
			Level:     level,
			Subsystem: subsystem,
			Message:   msg,
			Err:       err,
		}
		select {
		case shellChannel <- entry:
		default:
			fmt.Fprintf(os.Stderr, "[LOGGING_CRITICAL] shell log channel full. Dropping: %s\n", entry)
		}
		return
	}

	if defaultLogger == nil || !defaultLogger.Enabled(context.Background(), level.SlogLevel()) {
		return
	}

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	defaultLogger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}
