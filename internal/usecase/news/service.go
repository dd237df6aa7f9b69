package news

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"crypto-news/internal/common/pagination"
	"crypto-news/internal/domain/entity"
	"crypto-news/internal/repository"
)

// ListInput represents the parameters for a paginated news listing.
type ListInput struct {
	// Search is an optional keyword. When set, listing attempts a
	// relevance-ranked full-text match and falls back to a substring
	// match if the full-text mechanism is unavailable.
	Search string

	// RelevanceThreshold is the minimum full-text rank a match must
	// reach. Zero keeps every match.
	RelevanceThreshold float64

	Params pagination.Params
}

// ListResult contains one page of news items plus pagination metadata.
type ListResult struct {
	Items      []*entity.NewsItem
	Pagination pagination.Metadata
}

// MarketSentiment is the aggregate sentiment over a time window. Extrema
// are nil when the window holds no items.
type MarketSentiment struct {
	Average  float64
	Count    int64
	MaxScore *float64
	MinScore *float64
	MaxID    *int64
	MinID    *int64
}

// Service provides news query use cases.
type Service struct {
	Repo repository.NewsRepository
}

// List returns one page of news items, newest first. Listing is not
// restricted to the retention window: items the cleanup has not yet
// removed stay visible.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	offset := pagination.CalculateOffset(in.Params.Page, in.Params.PageSize)

	var (
		total int64
		items []*entity.NewsItem
		err   error
	)

	if in.Search == "" {
		total, err = s.Repo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count news: %w", err)
		}
		items, err = s.Repo.ListPaginated(ctx, offset, in.Params.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list news: %w", err)
		}
	} else {
		total, items, err = s.search(ctx, in, offset)
		if err != nil {
			return nil, err
		}
	}

	return &ListResult{
		Items: items,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       in.Params.Page,
			PageSize:   in.Params.PageSize,
			TotalPages: pagination.CalculateTotalPages(total, in.Params.PageSize),
		},
	}, nil
}

// search attempts a ranked full-text match and degrades to a substring
// match across the same fields when the full-text query fails (the search
// index is created best-effort and may not exist). The fallback re-derives
// its own count so the pagination metadata stays consistent with the
// substring predicate.
func (s *Service) search(ctx context.Context, in ListInput, offset int) (int64, []*entity.NewsItem, error) {
	total, err := s.Repo.CountRanked(ctx, in.Search, in.RelevanceThreshold)
	if err == nil {
		var items []*entity.NewsItem
		items, err = s.Repo.SearchRanked(ctx, in.Search, in.RelevanceThreshold, offset, in.Params.PageSize)
		if err == nil {
			return total, items, nil
		}
	}

	slog.WarnContext(ctx, "full-text search unavailable, using substring match",
		slog.String("search", in.Search),
		slog.String("error", err.Error()))

	total, err = s.Repo.CountSubstring(ctx, in.Search)
	if err != nil {
		return 0, nil, fmt.Errorf("count news by substring: %w", err)
	}
	items, err := s.Repo.SearchSubstring(ctx, in.Search, offset, in.Params.PageSize)
	if err != nil {
		return 0, nil, fmt.Errorf("search news by substring: %w", err)
	}
	return total, items, nil
}

// Get retrieves a single news item by its ID.
// Returns ErrInvalidNewsID if the ID is not positive.
// Returns ErrNewsNotFound if the item does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.NewsItem, error) {
	if id <= 0 {
		return nil, ErrInvalidNewsID
	}

	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}
	if item == nil {
		return nil, ErrNewsNotFound
	}
	return item, nil
}

// Sentiment aggregates sentiment over items received within the window
// ending at now. An empty window yields the neutral default: average 0.5,
// count 0, no extrema. The average is rounded to 4 decimal places.
func (s *Service) Sentiment(ctx context.Context, now time.Time, window time.Duration) (*MarketSentiment, error) {
	stats, err := s.Repo.SentimentStats(ctx, now.Add(-window))
	if err != nil {
		return nil, fmt.Errorf("sentiment stats: %w", err)
	}
	if stats == nil {
		return &MarketSentiment{Average: entity.NeutralScore, Count: 0}, nil
	}

	avg := math.Round(stats.Average*10000) / 10000

	return &MarketSentiment{
		Average:  avg,
		Count:    stats.Count,
		MaxScore: &stats.MaxScore,
		MinScore: &stats.MinScore,
		MaxID:    &stats.MaxID,
		MinID:    &stats.MinID,
	}, nil
}
