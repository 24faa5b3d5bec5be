package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cmahoney/rosterwatch/internal/common/errors"
	"github.com/cmahoney/rosterwatch/internal/movement"
)

// Discord embed colors.
const (
	discordGreen   = 0x57F287
	discordRed     = 0xED4245
	discordBlurple = 0x5865F2
)

// DiscordNotifier posts notifications as embeds to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a notifier for the given webhook URL
func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// Send posts one notification as a single embed. Any non-2xx response is
// treated as a delivery failure.
func (n *DiscordNotifier) Send(ctx context.Context, notification Notification) error {
	if n.webhookURL == "" {
		return errors.ErrMissingConfig
	}

	payload := discordPayload{
		Embeds: []discordEmbed{{
			Title:       notification.Header,
			Description: notification.Body,
			Color:       embedColor(notification.Color),
			Timestamp:   notification.Date.Format(time.RFC3339),
		}},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal webhook payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "failed to create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to execute webhook request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: webhook returned status %d", errors.ErrDeliveryFailed, resp.StatusCode)
	}

	return nil
}

func embedColor(color movement.Color) int {
	switch color {
	case movement.ColorGood:
		return discordGreen
	case movement.ColorBad:
		return discordRed
	default:
		return discordBlurple
	}
}
