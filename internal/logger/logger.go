// Package logger wraps log/slog behind a small interface and a functional-
// options constructor, the same shape the upstream product's internal
// logger package exposes (Logger interface, WithDebug/WithFormat/WithQuiet/
// WithLogFile options), re-expressed over the standard library's structured
// logger plus slog-multi for fanning output to more than one handler.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// Logger is the side-channel logging capability used across dagrs. Errors
// are values, never logs — nothing in the scheduler, executor or engine
// returns a Logger-observed state in place of an error; Logger exists purely
// for operational visibility.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }
func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

// options holds the constructor's configurable state.
type options struct {
	debug  bool
	format string // "text" or "json"
	quiet  bool
	file   *os.File
}

// Option configures a Logger at construction time.
type Option func(*options)

// WithDebug lowers the minimum level to slog.LevelDebug.
func WithDebug() Option { return func(o *options) { o.debug = true } }

// WithFormat selects "json" or "text" (default "text").
func WithFormat(format string) Option { return func(o *options) { o.format = format } }

// WithQuiet discards console output entirely — useful for tests, mirroring
// the upstream logger.WithQuiet used by its own test suite.
func WithQuiet() Option { return func(o *options) { o.quiet = true } }

// WithLogFile additionally fans log records out to f via slog-multi.
func WithLogFile(f *os.File) Option { return func(o *options) { o.file = f } }

// New builds a Logger from the given options. With no options it logs text
// at Info level to stderr.
func New(opts ...Option) Logger {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	level := slog.LevelInfo
	if o.debug {
		level = slog.LevelDebug
	}

	var console io.Writer = os.Stderr
	if o.quiet {
		console = io.Discard
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var consoleHandler slog.Handler
	if o.format == "json" {
		consoleHandler = slog.NewJSONHandler(console, handlerOpts)
	} else {
		consoleHandler = slog.NewTextHandler(console, handlerOpts)
	}

	handler := consoleHandler
	if o.file != nil {
		fileHandler := slog.NewJSONHandler(o.file, handlerOpts)
		handler = slogmulti.Fanout(consoleHandler, fileHandler)
	}

	return &slogLogger{l: slog.New(handler)}
}

// Default is a package-level Logger for call sites (e.g. package engine's
// zero-value construction) that don't otherwise have one wired in.
var Default Logger = New()

// contextKey is unexported so only this package can stuff a Logger into a
// context.Context.
type contextKey struct{}

// WithContext returns a derived context carrying l, retrievable via
// FromContext.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the Logger stored in ctx, or Default if none was set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(contextKey{}).(Logger); ok {
		return l
	}
	return Default
}
