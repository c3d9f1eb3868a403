package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	logger, _, err := New(Config{Level: "WARN", Output: &output})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "routine_id", 3)

	text := output.String()
	if strings.Contains(text, "hidden") {
		t.Fatalf("expected info line to be filtered, got %q", text)
	}
	if !strings.Contains(text, "shown") || !strings.Contains(text, "routine_id=3") {
		t.Fatalf("expected warn line with fields, got %q", text)
	}
	if !strings.Contains(text, "daymate") {
		t.Fatalf("expected default prefix, got %q", text)
	}
}

func TestNewWritesRotatingFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "logs", "daymate.log")
	var output bytes.Buffer
	logger, writer, err := New(Config{File: file, Output: &output})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("server started")
	if _, err := writer.Write([]byte("GET /healthz 200\n")); err != nil {
		t.Fatalf("write access line: %v", err)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "server started") || !strings.Contains(string(content), "GET /healthz 200") {
		t.Fatalf("expected both lines in file, got %q", content)
	}
	if !strings.Contains(output.String(), "server started") {
		t.Fatalf("expected line on primary output, got %q", output.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatal("expected unknown level to fail")
	}
}
