package notify

import (
	"context"
	"fmt"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/infra/notifier"
)

// DiscordChannel adapts the Discord webhook notifier to the Channel interface.
type DiscordChannel struct {
	notifier *notifier.DiscordNotifier
	enabled  bool
}

// NewDiscordChannel creates a Discord notification channel.
func NewDiscordChannel(config notifier.DiscordConfig) *DiscordChannel {
	return &DiscordChannel{
		notifier: notifier.NewDiscordNotifier(config),
		enabled:  config.Enabled,
	}
}

// Name implements the Channel interface.
func (c *DiscordChannel) Name() string {
	return "discord"
}

// IsEnabled implements the Channel interface.
func (c *DiscordChannel) IsEnabled() bool {
	return c.enabled
}

// Send implements the Channel interface.
func (c *DiscordChannel) Send(ctx context.Context, item *entity.NewsItem) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if item == nil || item.Title == "" {
		return ErrInvalidItem
	}

	if err := c.notifier.NotifyNews(ctx, item); err != nil {
		return fmt.Errorf("send discord notification: %w", err)
	}
	return nil
}
