package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewWritesPlainTextToBuffers(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	logger := New(&output, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("invoice created", "id", "inv_1")

	text := output.String()
	if strings.Contains(text, "hidden") {
		t.Fatalf("expected debug line to be filtered, got %q", text)
	}
	if !strings.Contains(text, "invoice created") || !strings.Contains(text, "id=inv_1") {
		t.Fatalf("unexpected log output %q", text)
	}
	if strings.Contains(text, "\x1b[") {
		t.Fatalf("expected no color codes for non-terminal output, got %q", text)
	}
}
