package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/userrecords/internal/config"
)

// Setup initializes the application's logging system from cfg, writing to
// stdout, and installs the result as slog.Default().
func Setup(cfg config.LogConfig) (*slog.Logger, error) {
	l, err := New(os.Stdout, cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	return l, nil
}

// New builds a structured logger writing to w.
//
// An unrecognized level falls back to info with a warning on stderr. An
// unrecognized format is an error.
func New(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	return slog.New(handler), nil
}

// ParseLevel maps a case-insensitive level name to a slog.Level.
// It returns slog.LevelInfo and false for unknown names.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
