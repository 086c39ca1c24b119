package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// parseLogLevel converts a LOG_LEVEL value to a slog level.
func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToUpper(value) {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q", value)
	}
}

// newLogHandler creates a text handler, or a JSON handler if format is "json".
func newLogHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, options)
	}
	return slog.NewTextHandler(w, options)
}

// SetLogLevel sets up the default logger from the LOG_LEVEL and LOG_FORMAT environment variables.
func SetLogLevel() {
	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		slog.Error("Invalid log level", "level", os.Getenv("LOG_LEVEL"))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(newLogHandler(os.Stderr, os.Getenv("LOG_FORMAT"), level)))
}
