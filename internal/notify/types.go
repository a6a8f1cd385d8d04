// Package notify routes transient user-facing notifications (the toasts
// of the console) to registered senders: the structured log and, when the
// TUI is running, the on-screen toast area.
package notify

import (
	"context"
	"time"
)

// Severity is the notification level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}

	return "unknown"
}

// Event is one notification with the context needed for display.
type Event struct {
	// Severity drives styling and log level.
	Severity Severity

	// Summary is the short headline (e.g. "Updated").
	Summary string

	// Detail is the full message shown to the user.
	Detail string

	// Entity names the collection the event concerns, when any.
	Entity string

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Err carries the underlying failure for error events.
	Err error
}

// Sender is the interface for notification sinks.
type Sender interface {
	// Send delivers one event. Returns an error if delivery failed.
	Send(ctx context.Context, event *Event) error

	// Name returns the sender's name for registration and logging.
	Name() string
}
