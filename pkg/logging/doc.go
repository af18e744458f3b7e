// Package logging provides the structured logging used across unifimac.
//
// It is a thin layer over Go's slog package that tags every entry with a
// subsystem and supports two output modes.
//
// # Modes
//
// CLI mode writes entries through a slog text handler, usually to stderr so
// that reports on stdout stay clean:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Controller", "Logging into %s", baseURL)
//	logging.Error("Export", err, "Failed to write %s", path)
//
// Shell mode delivers entries on a channel instead. The interactive shell's
// event loop drains the channel and prints each entry above the prompt, so
// worker goroutines never write to the terminal directly:
//
//	entries := logging.InitForShell(logging.LevelInfo)
//	defer logging.CloseShellChannel()
//
// # Subsystems
//
//   - Bootstrap: command start-up and configuration loading
//   - Controller: HTTP session and resource retrieval
//   - HTTP: per-request logging from the retryable HTTP client
//   - Export: report and file export
//   - Shell: interactive shell event loop and worker
//
// All functions are safe for concurrent use.
package logging
