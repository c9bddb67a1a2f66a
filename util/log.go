// Package util provides logging helpers shared by the driver packages.
package util

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LevelTrace sits below Debug and is used for per-register transcript lines.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs a message at LevelTrace on the given logger. A nil logger uses
// the default logger.
func Trace(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// ParseLevel converts a level name to a slog level. It accepts "trace" in
// addition to the slog names.
func ParseLevel(name string) (slog.Level, error) {
	if strings.EqualFold(name, "trace") {
		return LevelTrace, nil
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}

	return l, nil
}

// ReplaceLevelName prints LevelTrace as TRACE. It is meant to be used as
// slog.HandlerOptions.ReplaceAttr.
func ReplaceLevelName(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}

	if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}

	return a
}
