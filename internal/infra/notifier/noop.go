package notifier

import (
	"context"

	"crypto-news/internal/domain/entity"
)

// NoopNotifier discards notifications. Used when no webhook is configured.
type NoopNotifier struct{}

// NewNoopNotifier creates a no-op notifier.
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// NotifyNews implements the Notifier interface and does nothing.
func (n *NoopNotifier) NotifyNews(_ context.Context, _ *entity.NewsItem) error {
	return nil
}
