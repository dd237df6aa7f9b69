// Package repository defines persistence interfaces consumed by the use case
// layer. Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"time"

	"crypto-news/internal/domain/entity"
)

// SentimentStats is the aggregate sentiment of all items received after a
// cutoff. MaxID/MinID identify the items holding the extreme scores; ties are
// broken by earliest received_at, then smallest id.
type SentimentStats struct {
	Count    int64
	Average  float64
	MaxScore float64
	MinScore float64
	MaxID    int64
	MinID    int64
}

type NewsRepository interface {
	// Create inserts a news item and assigns its database identifier.
	Create(ctx context.Context, item *entity.NewsItem) error
	// Get retrieves a news item by ID.
	// Returns (nil, nil) if the item is not found.
	Get(ctx context.Context, id int64) (*entity.NewsItem, error)
	// ListPaginated retrieves items ordered by received_at DESC.
	// Uses LIMIT and OFFSET for pagination.
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.NewsItem, error)
	// Count returns the total number of stored items.
	Count(ctx context.Context) (int64, error)
	// SearchRanked performs a relevance-ranked full-text match against
	// title, original content, and summary. Only matches with a rank of at
	// least minRank are returned, ordered by rank DESC then received_at DESC.
	// Fails when the database does not support full-text search; callers are
	// expected to fall back to SearchSubstring.
	SearchRanked(ctx context.Context, query string, minRank float64, offset, limit int) ([]*entity.NewsItem, error)
	// CountRanked returns the number of full-text matches for SearchRanked.
	CountRanked(ctx context.Context, query string, minRank float64) (int64, error)
	// SearchSubstring performs a case-insensitive substring match across
	// title, original content, and summary, ordered by received_at DESC.
	SearchSubstring(ctx context.Context, query string, offset, limit int) ([]*entity.NewsItem, error)
	// CountSubstring returns the number of substring matches for SearchSubstring.
	CountSubstring(ctx context.Context, query string) (int64, error)
	// SentimentStats aggregates sentiment scores over items received after
	// the cutoff. Returns (nil, nil) when no items fall inside the window.
	SentimentStats(ctx context.Context, since time.Time) (*SentimentStats, error)
	// DeleteOlderThan removes every item received before the cutoff and
	// reports how many rows were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
