// Package notify delivers crash messages to the configured destination.
package notify

import "context"

// Notifier delivers one crash message, so that tests and future
// destinations can substitute the webhook implementation.
type Notifier interface {
	Deliver(ctx context.Context, text string) error
}
