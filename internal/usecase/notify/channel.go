// Package notify dispatches major-news alerts across the configured delivery
// channels. Dispatch is asynchronous: a failed or slow webhook never delays
// ingestion. Each channel runs behind its own circuit breaker so a dead
// endpoint stops consuming workers.
package notify

import (
	"context"

	"crypto-news/internal/domain/entity"
)

// Channel represents one notification delivery target (Discord, Slack, etc.).
//
// Implementations must be safe for concurrent use, respect context
// cancellation, and handle their own rate limiting and retries.
type Channel interface {
	// Name returns the channel identifier used for logging and metrics
	// (lowercase, alphanumeric).
	Name() string

	// IsEnabled reports whether the channel is enabled via configuration.
	// Disabled channels are skipped during dispatch.
	IsEnabled() bool

	// Send delivers a notification about a news item. It returns a non-nil
	// error only after the channel's own retry policy is exhausted.
	Send(ctx context.Context, item *entity.NewsItem) error
}
