// Package logx writes structured log lines for the core/log.Logger interface.
//
// Overview:
//   - Responsibility: logfmt, JSON and console output with sorted fields and a colored level
//   - Key Types: Logger, Option, Format
//   - Concurrency Model: Loggers derived with With share one writer guarded by a mutex
//   - Error Semantics: Write failures are dropped
//   - Performance Notes: Single write per record
//
// Usage:
//
//	logger := logx.New(logx.WithFormat(logx.FormatConsole), logx.WithTimestamp(true))
//	logger.Info("project created", log.Str("project", "Demo"))
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.eggybyte.com/jscaffold/core/log"
	"go.eggybyte.com/jscaffold/logx/internal"
)

// Format specifies the output format for logs.
type Format string

const (
	// FormatLogfmt outputs logs in logfmt format (key=value pairs).
	FormatLogfmt Format = internal.FormatLogfmt
	// FormatJSON outputs logs as one JSON object per line.
	FormatJSON Format = internal.FormatJSON
	// FormatConsole outputs human-oriented lines for interactive terminals.
	FormatConsole Format = internal.FormatConsole
)

// Option configures a Logger built by New.
type Option func(*settings)

type settings struct {
	format    Format
	level     slog.Level
	color     bool
	timestamp bool
	writer    io.Writer
}

// WithFormat sets the output format (default logfmt).
func WithFormat(format Format) Option {
	return func(s *settings) { s.format = format }
}

// WithLevel sets the minimum log level (default info).
func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithColor colors the level field.
func WithColor(enabled bool) Option {
	return func(s *settings) { s.color = enabled }
}

// WithTimestamp prefixes each line with the current time. Off by default.
func WithTimestamp(enabled bool) Option {
	return func(s *settings) { s.timestamp = enabled }
}

// WithWriter sets the destination (default os.Stderr).
func WithWriter(w io.Writer) Option {
	return func(s *settings) { s.writer = w }
}

// Logger implements core/log.Logger.
type Logger struct {
	handler *internal.Handler
	fields  []slog.Attr
}

// New creates a Logger.
func New(opts ...Option) log.Logger {
	s := settings{format: FormatLogfmt, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&s)
	}
	if s.writer == nil {
		s.writer = os.Stderr
	}

	return &Logger{handler: internal.NewHandler(internal.Options{
		Format:           string(s.format),
		Level:            s.level,
		Color:            s.color,
		DisableTimestamp: !s.timestamp,
	}, s.writer)}
}

// ParseLevel converts a configured level name into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// With returns a Logger that adds kv to every record.
func (l *Logger) With(kv ...any) log.Logger {
	fields := append(append([]slog.Attr{}, l.fields...), internal.KVToAttrs(kv)...)
	return &Logger{handler: l.handler, fields: fields}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, kv ...any) { l.emit(slog.LevelDebug, msg, nil, kv) }

// Info logs an informational message.
func (l *Logger) Info(msg string, kv ...any) { l.emit(slog.LevelInfo, msg, nil, kv) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, kv ...any) { l.emit(slog.LevelWarn, msg, nil, kv) }

// Error logs an error message with the error under the "error" key.
func (l *Logger) Error(err error, msg string, kv ...any) { l.emit(slog.LevelError, msg, err, kv) }

func (l *Logger) emit(level slog.Level, msg string, err error, kv []any) {
	attrs := append([]slog.Attr{}, l.fields...)
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	attrs = append(attrs, internal.KVToAttrs(kv)...)
	l.handler.LogRecord(level, msg, attrs)
}
