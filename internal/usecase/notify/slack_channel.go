package notify

import (
	"context"
	"fmt"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/infra/notifier"
)

// SlackChannel adapts the Slack webhook notifier to the Channel interface.
type SlackChannel struct {
	notifier *notifier.SlackNotifier
	enabled  bool
}

// NewSlackChannel creates a Slack notification channel.
func NewSlackChannel(config notifier.SlackConfig) *SlackChannel {
	return &SlackChannel{
		notifier: notifier.NewSlackNotifier(config),
		enabled:  config.Enabled,
	}
}

// Name implements the Channel interface.
func (c *SlackChannel) Name() string {
	return "slack"
}

// IsEnabled implements the Channel interface.
func (c *SlackChannel) IsEnabled() bool {
	return c.enabled
}

// Send implements the Channel interface.
func (c *SlackChannel) Send(ctx context.Context, item *entity.NewsItem) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if item == nil || item.Title == "" {
		return ErrInvalidItem
	}

	if err := c.notifier.NotifyNews(ctx, item); err != nil {
		return fmt.Errorf("send slack notification: %w", err)
	}
	return nil
}
