// Package notifier delivers alerts about major news items to webhook
// services. It defines the Notifier interface which allows different delivery
// mechanisms (Discord, Slack, etc.) to be used interchangeably, plus a no-op
// implementation for when notifications are disabled.
package notifier

import (
	"context"

	"crypto-news/internal/domain/entity"
)

// Notifier sends an alert about a single news item.
// Implementations handle rate limiting and retries internally.
type Notifier interface {
	// NotifyNews sends a notification about a news item. It returns a
	// non-nil error only after all retry attempts have failed.
	NotifyNews(ctx context.Context, item *entity.NewsItem) error
}
