package nck

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the structured logger used throughout the nck package and its
// cmd/ front ends, built on charmbracelet/log (already present in the
// dependency set this project started from, but previously unused by any
// package). A nil *Logger is valid and silently discards everything, so
// library code can log through a caller-supplied logger without forcing
// every caller to construct one.
type Logger struct {
	l *log.Logger
}

// NewLogger builds a Logger writing to w at the given level ("debug",
// "info", "warn", "error"); an empty level defaults to "info".
func NewLogger(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "nck",
	})
	switch level {
	case "debug":
		l.SetLevel(log.DebugLevel)
	case "warn":
		l.SetLevel(log.WarnLevel)
	case "error":
		l.SetLevel(log.ErrorLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
	return &Logger{l: l}
}

func (lg *Logger) Debug(msg string, kv ...any) {
	if lg == nil || lg.l == nil {
		return
	}
	lg.l.Debug(msg, kv...)
}

func (lg *Logger) Info(msg string, kv ...any) {
	if lg == nil || lg.l == nil {
		return
	}
	lg.l.Info(msg, kv...)
}

func (lg *Logger) Warn(msg string, kv ...any) {
	if lg == nil || lg.l == nil {
		return
	}
	lg.l.Warn(msg, kv...)
}

func (lg *Logger) Error(msg string, kv ...any) {
	if lg == nil || lg.l == nil {
		return
	}
	lg.l.Error(msg, kv...)
}

// With returns a child Logger that always includes the given key/value
// pairs, e.g. the active modem configuration for the lifetime of a run.
func (lg *Logger) With(kv ...any) *Logger {
	if lg == nil || lg.l == nil {
		return nil
	}
	return &Logger{l: lg.l.With(kv...)}
}
