// Package logging sets up the shared slog logger for both binaries.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New builds a logger writing to w at the given level ("debug", "info",
// "warn", "error") and format ("text" or "json"). Unknown values fall
// back to info-level text.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
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
