package logging

import (
	"fmt"
	"os"
	"sync/atomic"
)

var global atomic.Pointer[Logger]

func defaultLevelFromEnv() Level {
	if os.Getenv("KAN_DEBUG") == "1" {
		return LevelDebug
	}
	return LevelInfo
}

// SetGlobal sets the global logger instance.
func SetGlobal(l *Logger) {
	global.Store(l)
}

// Global returns the global logger instance, creating a default one on first use.
func Global() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, NewLogger(Options{DefaultLevel: defaultLevelFromEnv()}))
	return global.Load()
}

// TargetLogger logs to one target of a Logger.
type TargetLogger struct {
	logger *Logger
	target string
}

// For returns a TargetLogger writing to target on the global logger.
func For(target string) TargetLogger {
	return TargetLogger{target: target}
}

// With returns a TargetLogger writing to target on l.
func (l *Logger) With(target string) TargetLogger {
	return TargetLogger{logger: l, target: target}
}

func (t TargetLogger) base() *Logger {
	if t.logger != nil {
		return t.logger
	}
	return Global()
}

// Target returns the target name.
func (t TargetLogger) Target() string { return t.target }

// Trace logs a trace message to the target.
func (t TargetLogger) Trace(format string, args ...interface{}) {
	t.base().Logf(t.target, LevelTrace, format, args...)
}

// Debug logs debug information to the target.
func (t TargetLogger) Debug(format string, args ...interface{}) {
	t.base().Logf(t.target, LevelDebug, format, args...)
}

// Info logs an informational message to the target.
func (t TargetLogger) Info(format string, args ...interface{}) {
	t.base().Logf(t.target, LevelInfo, format, args...)
}

// Warn logs a warning to the target.
func (t TargetLogger) Warn(format string, args ...interface{}) {
	t.base().Logf(t.target, LevelWarn, format, args...)
}

// Error logs an error to the target.
func (t TargetLogger) Error(format string, args ...interface{}) {
	t.base().Logf(t.target, LevelError, format, args...)
}

// Errorf logs err-style messages and returns them as an error.
func (t TargetLogger) Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	t.base().Logf(t.target, LevelError, "%v", err)
	return err
}

// StartTimer starts a timer whose result is logged to this target.
func (t TargetLogger) StartTimer(operation string) *Timer {
	t.Debug("%s started", operation)
	return &Timer{operation: operation, start: t.base().clock(), logger: t}
}

// Trace logs using the global logger.
func Trace(format string, args ...interface{}) {
	Global().Logf(DefaultTarget, LevelTrace, format, args...)
}

// Debug logs debug information using the global logger.
func Debug(format string, args ...interface{}) {
	Global().Logf(DefaultTarget, LevelDebug, format, args...)
}

// Info logs informational message using the global logger.
func Info(format string, args ...interface{}) {
	Global().Logf(DefaultTarget, LevelInfo, format, args...)
}

// Warn logs a warning using the global logger.
func Warn(format string, args ...interface{}) {
	Global().Logf(DefaultTarget, LevelWarn, format, args...)
}

// Error logs an error using the global logger.
func Error(format string, args ...interface{}) {
	Global().Logf(DefaultTarget, LevelError, format, args...)
}

// StartTimer starts a timer for measuring operation duration using the global logger.
func StartTimer(operation string) *Timer {
	return For(DefaultTarget).StartTimer(operation)
}
