// Package notify delivers user-facing notifications such as achievement
// unlocks. Delivery is best effort: callers log failures and move on.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

// Notifier delivers a titled message.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, title, message string) error {
	n.logger.Info().Str("title", title).Msg(message)
	return nil
}

// SlackNotifier posts notifications to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

func (n *SlackNotifier) Notify(ctx context.Context, title, message string) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("*%s*\n%s", title, message),
	}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return fmt.Errorf("posting slack webhook: %w", err)
	}
	return nil
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, message string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(context.Context, string, string) error { return nil }
