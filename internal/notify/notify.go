// Package notify provides the fire-and-forget notification sink the
// taxonomy and ledger services publish events to. Delivery is best
// effort; failures never propagate to the caller.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogSink records notification events in the structured log. It stands
// in for the platform's real delivery pipeline, which the core does not
// depend on.
type LogSink struct{}

// NewLogSink returns a logging notification sink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Notify logs the event. uuid.Nil as userID marks a platform-level event
// with no specific recipient.
func (s *LogSink) Notify(ctx context.Context, userID uuid.UUID, kind string, payload any) {
	slog.Info("notification",
		"user_id", userID,
		"kind", kind,
		"payload", payload,
	)
}
