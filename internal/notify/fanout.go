package notify

import (
	"context"
	"log/slog"
)

// Fanout delivers notifications one at a time, best effort: a failed
// delivery is logged and counted but does not block the rest. Returns
// the number of failures.
func Fanout(ctx context.Context, notifier Notifier, notifications []Notification, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	failed := 0
	for _, n := range notifications {
		if err := notifier.Send(ctx, n); err != nil {
			logger.Error("Failed to deliver notification", "header", n.Header, "error", err)
			failed++
		}
	}
	return failed
}
