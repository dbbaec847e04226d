// Package notify pushes harness outcomes to chat channels so a regression
// reaches humans even when nobody is watching the CI log.
package notify

import "context"

// Notifier delivers one message to one destination.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Noop discards every message. Used when notifications are disabled.
type Noop struct{}

func (Noop) Notify(context.Context, string) error { return nil }
