package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level  string
	File   string
	Prefix string
	// Output replaces stderr when set. Tests use it to capture lines.
	Output io.Writer
}

// New builds the process logger. When File is set, lines also go to a rotating log file.
// The returned writer is shared with the HTTP access log.
func New(cfg Config) (*log.Logger, io.Writer, error) {
	level := log.InfoLevel
	if raw := strings.TrimSpace(cfg.Level); raw != "" {
		parsed, err := log.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var writer io.Writer = os.Stderr
	if cfg.Output != nil {
		writer = cfg.Output
	}

	if file := strings.TrimSpace(cfg.File); file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		writer = io.MultiWriter(writer, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "daymate"
	}

	logger := log.NewWithOptions(writer, log.Options{
		ReportCaller:    level == log.DebugLevel,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	})
	return logger, writer, nil
}
