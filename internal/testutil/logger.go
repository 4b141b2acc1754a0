// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/leapscript/pkg/parser"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// DiscardLogger returns a logger that drops everything. Useful for
// benchmarks and tests that only care about return values.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MustParse parses src and fails the test on error. The returned program
// is closed automatically when the test finishes.
func MustParse(t testing.TB, src string) *parser.Program {
	t.Helper()
	prog, err := parser.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	t.Cleanup(func() { prog.Close() })
	return prog
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
