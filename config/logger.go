package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a slog.Logger configured from GO_ENV, LOG_LEVEL and LOG_FORMAT,
// writing to stdout. Every record carries service=devevent.
// LOG_LEVEL may be: debug, info, warn, error (default: info).
// LOG_FORMAT may be json or text; when unset, production logs JSON and other
// environments log text.
func NewLogger() *slog.Logger {
	return newLogger(os.Stdout, os.Getenv("GO_ENV"), os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

func newLogger(w io.Writer, env, levelName, format string) *slog.Logger {
	if env == "" {
		env = "development"
	}
	opts := &slog.HandlerOptions{Level: parseLevel(levelName)}

	format = strings.ToLower(format)
	if format == "" && env == "production" {
		format = "json"
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "devevent")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
