package logging

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognized names.
var ErrUnknownLevel = errors.New("unknown log level")

// Level is the severity of a record, ordered from least to most important.
// As a threshold, a Level admits records at that severity or above.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	// LevelOff is only meaningful as a threshold: it admits nothing.
	LevelOff
)

// String returns the short form used in compact log panes (L0..L5).
func (l Level) String() string {
	return fmt.Sprintf("L%d", int(l))
}

// Name returns the upper-case level name.
func (l Level) Name() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Admits reports whether a record of severity level passes threshold l.
func (l Level) Admits(level Level) bool {
	return l != LevelOff && level >= l
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	}
	return LevelInfo, fmt.Errorf("%w %q", ErrUnknownLevel, s)
}
