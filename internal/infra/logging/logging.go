package logging

import (
	"io"
	"log/slog"
	"strings"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// New builds the process logger and installs it as the slog default.
// Unknown formats fall back to JSON, unknown levels to info.
func New(w io.Writer, logFormat, logLevel string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	}

	var handler slog.Handler

	switch strings.ToLower(logFormat) {
	case FormatText:
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(logLevel string) slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}
