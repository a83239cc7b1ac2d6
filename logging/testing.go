package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservedTestLogger returns a Debug+ logger writing to tb and an
// in-memory copy of every entry.
func NewObservedTestLogger(tb testing.TB) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	testLogger := zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel))
	return zap.New(zapcore.NewTee(testLogger.Core(), core)), logs
}
