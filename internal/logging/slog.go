package logging

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// TargetKey is the slog attribute that overrides the handler's target.
const TargetKey = "target"

// Handler adapts a Logger to slog. Attributes other than TargetKey are
// appended to the message as key=value pairs.
type Handler struct {
	logger *Logger
	target string
	attrs  []slog.Attr
	group  string
}

// NewHandler creates a slog.Handler writing to target on l.
func NewHandler(l *Logger, target string) *Handler {
	return &Handler{logger: l, target: target}
}

// NewSlog returns a *slog.Logger backed by l.
func NewSlog(l *Logger, target string) *slog.Logger {
	return slog.New(NewHandler(l, target))
}

func fromSlogLevel(level slog.Level) Level {
	switch {
	case level < slog.LevelDebug:
		return LevelTrace
	case level < slog.LevelInfo:
		return LevelDebug
	case level < slog.LevelWarn:
		return LevelInfo
	case level < slog.LevelError:
		return LevelWarn
	default:
		return LevelError
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.Enabled(h.target, fromSlogLevel(level))
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	target := h.target
	var b strings.Builder
	b.WriteString(r.Message)

	write := func(a slog.Attr) bool {
		if a.Key == TargetKey {
			target = a.Value.String()
			return true
		}
		if a.Equal(slog.Attr{}) {
			return true
		}
		b.WriteByte(' ')
		if h.group != "" {
			b.WriteString(h.group)
			b.WriteByte('.')
		}
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	level := fromSlogLevel(r.Level)
	if !h.logger.Enabled(target, level) {
		return nil
	}
	h.logger.Log(Record{Level: level, Target: target, Message: b.String()})
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		logger: h.logger,
		target: h.target,
		attrs:  slices.Concat(h.attrs, attrs),
		group:  h.group,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &Handler{logger: h.logger, target: h.target, attrs: h.attrs, group: group}
}
