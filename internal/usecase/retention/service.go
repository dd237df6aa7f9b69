// Package retention provides the use case for removing expired news items.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crypto-news/internal/repository"
)

// Service deletes news items older than the configured retention window.
type Service struct {
	Repo   repository.NewsRepository
	Window time.Duration
}

// Cleanup removes every item received before now minus the retention
// window and returns the number of deleted rows.
func (s *Service) Cleanup(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.Window)

	deleted, err := s.Repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old news: %w", err)
	}

	slog.InfoContext(ctx, "Removed expired news",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff))
	return deleted, nil
}
