package notify

import "errors"

// Sentinel errors for notify use case operations.
var (
	// ErrChannelDisabled indicates that Send() was called on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidItem indicates that the news item is nil or missing the
	// fields a notification needs (title, source URL).
	ErrInvalidItem = errors.New("invalid news item")

	// ErrNotificationDropped indicates that a notification was dropped
	// because the worker pool stayed saturated past the acquire timeout.
	ErrNotificationDropped = errors.New("notification dropped due to pool saturation")
)
