// Package logger строит логгер приложения поверх log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log - логгер с printf-методами, как их использует остальной код
type Log struct {
	*slog.Logger
	closer io.Closer
}

// NewLogger создает логгер по настройкам из конфига.
// target: stdout, stderr или file (тогда нужен filename)
func NewLogger(target, level, filename string) (*Log, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var (
		w      io.Writer
		closer io.Closer
	)
	switch strings.ToLower(target) {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	case "file":
		if filename == "" {
			return nil, fmt.Errorf("filename is required for file target")
		}
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, fmt.Errorf("unknown logger target: %s", target)
	}

	l := New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	l.closer = closer
	return l, nil
}

func New(h slog.Handler) *Log {
	return &Log{Logger: slog.New(h)}
}

// Discard возвращает логгер, который ничего не пишет
func Discard() *Log {
	return New(slog.DiscardHandler)
}

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
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func (l *Log) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

func (l *Log) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Log) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

func (l *Log) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

// Close закрывает файл лога, если он был открыт
func (l *Log) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
