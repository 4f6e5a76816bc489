// Package logging provides the process-wide diagnostic logger.
//
// Stdout belongs to the menu and the TUI, so logs only go somewhere when a
// file is configured. Until Init is called everything is discarded.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog's debug level.
const LevelTrace = slog.Level(-8)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ParseLevel maps a level name to a slog level.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "err", "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%s: invalid log level", value)
}

// Init directs logging to w at the given minimum level. A nil writer
// discards everything.
func Init(w io.Writer, level slog.Level) {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	logger = slog.New(slog.NewTextHandler(w, opts))
}

func Trace(msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}
