// Package testutil contains helpers shared by tests.
package testutil

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/dtroode/taskmanager-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards every record.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}

// MakeBufferLogger returns a debug-level logger writing into the returned buffer.
func MakeBufferLogger() (*logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.NewWithWriter(buf, int(slog.LevelDebug)), buf
}
