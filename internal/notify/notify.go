// Package notify assembles and delivers roster movement notifications.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmahoney/rosterwatch/internal/mlb"
	"github.com/cmahoney/rosterwatch/internal/movement"
)

// Notification is one fully formatted, ready-to-deliver message.
type Notification struct {
	Header string
	Body   string
	Color  movement.Color
	Date   time.Time
}

// Notifier delivers a single notification to an external channel.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// Build composes a notification from a transaction and its classification.
// It performs no classification of its own: the movement phrase and color
// are taken as-is, and an empty phrase drops the movement line.
func Build(tx mlb.Transaction, result movement.Result, date time.Time) Notification {
	body := tx.Description
	if result.Phrase != "" {
		body = fmt.Sprintf("**%s**\n%s", result.Phrase, tx.Description)
	}

	return Notification{
		Header: fmt.Sprintf("%s - %s", tx.Person.FullName, tx.TypeDesc),
		Body:   body,
		Color:  result.Color,
		Date:   date,
	}
}

// LogNotifier writes notifications to the logger instead of delivering
// them. Used for dry runs.
type LogNotifier struct {
	Logger *slog.Logger
}

// Send logs the notification and always succeeds.
func (n *LogNotifier) Send(_ context.Context, notification Notification) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Dry run notification",
		"header", notification.Header,
		"body", notification.Body,
		"color", notification.Color.String(),
		"date", notification.Date.Format(mlb.DateFormat))
	return nil
}
