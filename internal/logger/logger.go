package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is a small chained wrapper around slog. Each call site derives a
// scoped logger with New(package).Function(name) so every line carries its
// origin without repeating it in the message.
type Logger struct {
	logger *slog.Logger
}

var root = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

func init() {
	slog.SetDefault(root)
}

func New(pkg string) Logger {
	return Logger{logger: root.With("package", pkg)}
}

func (l Logger) Function(name string) Logger {
	return Logger{logger: l.logger.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{logger: l.logger.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{logger: l.logger.With(args...)}
}

func (l Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Er logs an error without returning one, for paths that degrade instead of
// propagating.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Err logs and returns a wrapped error so call sites can do
// `return log.Err("...", err)` in one line.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from the message alone.
func (l Logger) Error(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l Logger) ErrMsg(msg string) error {
	l.logger.Error(msg)
	return fmt.Errorf("%s", msg)
}
