// Package logx implements the core/log interface on top of log/slog.
//
// Overview:
//   - Responsibility: Structured logging with logfmt or JSON output
//   - Key Types: Logger implementation, Option for configuration
//   - Concurrency Model: Loggers are safe for concurrent use
//   - Error Semantics: Logging never returns errors; write failures are dropped
//   - Performance Notes: Fields are sorted once per record for stable output
//
// Usage:
//
//	logger := logx.New(logx.WithFormat(logx.FormatJSON), logx.WithLevel(slog.LevelDebug))
//	logger.Info("locator ready", log.Int("factories", 2))
package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/limekit/lime/core/log"
	"github.com/limekit/lime/logx/internal"
)

// Format selects the record encoding.
type Format string

const (
	// FormatLogfmt encodes records as sorted key=value pairs.
	FormatLogfmt Format = "logfmt"
	// FormatJSON encodes records as single-line JSON objects.
	FormatJSON Format = "json"
)

// Options configures the logger.
type Options struct {
	Format     Format     // Record encoding (default: logfmt)
	Level      slog.Level // Minimum level (default: info)
	Writer     io.Writer  // Output writer (default: os.Stderr)
	Timestamps bool       // Include a time field (default: false; containers stamp records)
}

// Option mutates Options.
type Option func(*Options)

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return func(o *Options) { o.Format = format }
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) { o.Level = level }
}

// WithWriter sets the output writer.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

// WithTimestamps enables the time field.
func WithTimestamps(enabled bool) Option {
	return func(o *Options) { o.Timestamps = enabled }
}

// Logger implements core/log.Logger using the internal handler.
type Logger struct {
	handler *internal.Handler
	attrs   []slog.Attr
}

// New creates a Logger with the given options.
func New(opts ...Option) log.Logger {
	options := Options{
		Format: FormatLogfmt,
		Level:  slog.LevelInfo,
		Writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Writer == nil {
		options.Writer = os.Stderr
	}

	return &Logger{
		handler: internal.NewHandler(internal.Options{
			JSON:       options.Format == FormatJSON,
			Level:      options.Level,
			Writer:     options.Writer,
			Timestamps: options.Timestamps,
		}),
	}
}

// With returns a Logger carrying additional key-value pairs.
func (l *Logger) With(kv ...any) log.Logger {
	attrs := append([]slog.Attr{}, l.attrs...)
	attrs = append(attrs, internal.PairsToAttrs(kv)...)
	return &Logger{handler: l.handler, attrs: attrs}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, kv ...any) {
	l.emit(slog.LevelDebug, msg, nil, kv)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, kv ...any) {
	l.emit(slog.LevelInfo, msg, nil, kv)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, kv ...any) {
	l.emit(slog.LevelWarn, msg, nil, kv)
}

// Error logs an error message with the error attached as a field.
func (l *Logger) Error(err error, msg string, kv ...any) {
	l.emit(slog.LevelError, msg, err, kv)
}

func (l *Logger) emit(level slog.Level, msg string, err error, kv []any) {
	attrs := append([]slog.Attr{}, l.attrs...)
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	attrs = append(attrs, internal.PairsToAttrs(kv)...)
	l.handler.Emit(level, msg, attrs)
}
