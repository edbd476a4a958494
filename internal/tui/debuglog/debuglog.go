// ABOUTME: File-backed slog setup for the TUI
// ABOUTME: Keeps structured logs out of the terminal the UI is drawing on

package debuglog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var logFile *os.File

// Init routes the default slog logger to a debug file under configDir.
// When disabled (or configDir is empty) all logging is discarded, so
// packages can log unconditionally.
func Init(configDir string, enabled bool) error {
	if !enabled || configDir == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	logFile = f
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	return nil
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
