package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the directory under the user's home that holds jockey state.
const Dir = ".jockey"

// Setup creates a JSON logger that writes to ~/.jockey/debug.log.
// It returns the logger, a cleanup function to close the log file, and any error.
// The log file is truncated on each run so it reflects only the current process.
func Setup(level slog.Level) (*slog.Logger, func() error, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("getting home directory: %w", err)
	}

	dir := filepath.Join(home, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(dir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)

	return logger, f.Close, nil
}

// ParseLevel maps a config string to a slog level. Unknown values fall back to debug.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// Discard returns a logger that drops everything. Used by tests and by
// commands that run before logging is configured.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
