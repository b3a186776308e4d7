// Package logger provides structured logging with typed field helpers.
package logger

import (
	"io"
	"log/slog"
	"time"
)

// LogLevel controls the minimum level a logger emits.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Field is a typed key/value pair attached to a log entry.
type Field = slog.Attr

// Logger is the logging interface passed into component constructors.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// String creates a string field.
func String(key, value string) Field { return slog.String(key, value) }

// Int creates an int field.
func Int(key string, value int) Field { return slog.Int(key, value) }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return slog.Int64(key, value) }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return slog.Uint64(key, value) }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return slog.Float64(key, value) }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return slog.Bool(key, value) }

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field { return slog.Duration(key, value) }

// Time creates a time field.
func Time(key string, value time.Time) Field { return slog.Time(key, value) }

// Error creates an "error" field from an error value.
func Error(err error) Field { return slog.Any("error", err) }

// slogLogger adapts log/slog to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger creates a Logger writing text output to w at the given level.
// Extra fields, if any, are attached to every entry.
func NewSlogLogger(w io.Writer, level LogLevel, fields []Field) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: toSlogLevel(level)})
	l := slog.New(h)
	if len(fields) > 0 {
		l = l.With(attrsToArgs(fields)...)
	}
	return &slogLogger{l: l}
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func attrsToArgs(fields []Field) []any {
	args := make([]any, len(fields))
	for i := range fields {
		args[i] = fields[i]
	}
	return args
}

func (s *slogLogger) Debug(msg string, fields ...Field) { s.l.Debug(msg, attrsToArgs(fields)...) }
func (s *slogLogger) Info(msg string, fields ...Field)  { s.l.Info(msg, attrsToArgs(fields)...) }
func (s *slogLogger) Warn(msg string, fields ...Field)  { s.l.Warn(msg, attrsToArgs(fields)...) }
func (s *slogLogger) Error(msg string, fields ...Field) { s.l.Error(msg, attrsToArgs(fields)...) }

func (s *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{l: s.l.With(attrsToArgs(fields)...)}
}
