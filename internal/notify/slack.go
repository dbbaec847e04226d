package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackNotifier posts messages to a channel through the Slack Web API.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

// NewSlackNotifier creates a notifier for the given bot token and channel.
// Extra options are passed to the underlying client (tests inject a fake
// API URL this way).
func NewSlackNotifier(token, channel string, opts ...slack.Option) (*SlackNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("slack bot token is not configured")
	}
	if channel == "" {
		return nil, fmt.Errorf("slack channel is not configured")
	}
	return &SlackNotifier{
		client:  slack.New(token, opts...),
		channel: channel,
	}, nil
}

// Notify posts the message as markdown to the configured channel.
func (s *SlackNotifier) Notify(ctx context.Context, message string) error {
	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	return nil
}
