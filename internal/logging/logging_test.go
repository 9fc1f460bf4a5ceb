package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	logger, cleanup, err := Setup(slog.LevelDebug)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	var cleanupCalled bool
	defer func() {
		if !cleanupCalled {
			if cerr := cleanup(); cerr != nil {
				t.Errorf("cleanup failed: %v", cerr)
			}
		}
	}()

	if logger == nil {
		t.Error("expected non-nil logger")
	}

	jockeyDir := filepath.Join(tempHome, Dir)
	if _, err := os.Stat(jockeyDir); os.IsNotExist(err) {
		t.Error("expected .jockey directory to be created")
	}

	logPath := filepath.Join(jockeyDir, "debug.log")
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("expected debug.log file to be created")
	}

	logger.Debug("test message")
	logger.Info("test info message", "thread_id", "t-1")

	if err := cleanup(); err != nil {
		t.Errorf("cleanup failed: %v", err)
	}
	cleanupCalled = true

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, `"level":"DEBUG"`) {
		t.Error("expected DEBUG level entry in log file")
	}
	if !strings.Contains(contentStr, `"thread_id":"t-1"`) {
		t.Error("expected structured attribute in log file")
	}
}

func TestSetupRespectsLevel(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	logger, cleanup, err := Setup(slog.LevelWarn)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(tempHome, Dir, "debug.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(content), "dropped") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(string(content), "kept") {
		t.Error("expected warn entry in log file")
	}
}

func TestSetupTruncatesExistingFile(t *testing.T) {
	tempHome := t.TempDir()
	jockeyDir := filepath.Join(tempHome, Dir)
	if err := os.MkdirAll(jockeyDir, 0o755); err != nil {
		t.Fatalf("failed to create .jockey directory: %v", err)
	}

	logPath := filepath.Join(jockeyDir, "debug.log")
	existingContent := "This should be truncated"
	if err := os.WriteFile(logPath, []byte(existingContent), 0o644); err != nil {
		t.Fatalf("failed to create existing log file: %v", err)
	}
	t.Setenv("HOME", tempHome)

	logger, cleanup, err := Setup(slog.LevelDebug)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	logger.Info("new message after truncation")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(content), existingContent) {
		t.Error("expected existing content to be truncated")
	}
	if !strings.Contains(string(content), "new message after truncation") {
		t.Error("expected new message in truncated log file")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"info", slog.LevelInfo},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"debug", slog.LevelDebug},
		{"", slog.LevelDebug},
		{"chatty", slog.LevelDebug},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
