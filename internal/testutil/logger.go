// Package testutil содержит помощники для тестов.
package testutil

import (
	"log/slog"
	"testing"

	"db_autocreate/internal/logger"
)

// NewTestLogger пишет в t.Log(), вывод виден только при падении теста или с -v
func NewTestLogger(t testing.TB) *logger.Log {
	t.Helper()
	return logger.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
