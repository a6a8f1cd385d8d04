package notify

import (
	"context"
	"log/slog"
)

// LogSender writes events to the structured log. It is always registered
// so notifications remain visible in non-interactive runs.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-backed sender. A nil logger falls back to
// slog.Default.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(_ context.Context, event *Event) error {
	attrs := []any{
		slog.String("summary", event.Summary),
		slog.String("entity", event.Entity),
	}

	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
	}

	switch event.Severity {
	case SeverityError:
		s.logger.Error(event.Detail, attrs...)
	case SeverityWarn:
		s.logger.Warn(event.Detail, attrs...)
	default:
		s.logger.Info(event.Detail, attrs...)
	}

	return nil
}

// FuncSender adapts a plain function into a Sender. The TUI registers one
// to surface events as toasts.
type FuncSender struct {
	name string
	fn   func(*Event)
}

// NewFuncSender wraps fn as a named sender.
func NewFuncSender(name string, fn func(*Event)) *FuncSender {
	return &FuncSender{name: name, fn: fn}
}

func (s *FuncSender) Name() string { return s.name }

func (s *FuncSender) Send(_ context.Context, event *Event) error {
	s.fn(event)
	return nil
}
