package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/infra/classifier"
	"crypto-news/internal/repository"
)

// PushInput represents the input parameters for pushing a news article.
type PushInput struct {
	Title     string
	Content   string
	SourceURL string
}

// Cleaner removes expired news items. Cleanup failures after an ingest are
// logged, never surfaced to the caller.
type Cleaner interface {
	Cleanup(ctx context.Context, now time.Time) (int64, error)
}

// Notifier dispatches alerts for major news items. Implementations must not
// block; dispatch happens asynchronously in the notify service.
type Notifier interface {
	NotifyMajorNews(ctx context.Context, item *entity.NewsItem) error
}

// Service provides the news ingestion use case.
type Service struct {
	Repo       repository.NewsRepository
	Classifier classifier.Classifier
	Cleaner    Cleaner
	Notifier   Notifier

	// Major-news band: a score strictly below ThresholdLow or strictly
	// above ThresholdHigh marks the item as major.
	ThresholdLow  float64
	ThresholdHigh float64

	// CleanupTimeout bounds the detached cleanup goroutine. Zero means
	// no background cleanup is triggered beyond what Cleaner nil already
	// disables.
	CleanupTimeout time.Duration
}

// Push validates and classifies a pushed article, persists it and triggers
// a background retention cleanup. The stored item is returned with its
// assigned ID. A classification failure aborts the request; nothing is
// persisted.
func (s *Service) Push(ctx context.Context, in PushInput) (*entity.NewsItem, error) {
	if in.Title == "" {
		return nil, &entity.ValidationError{Field: "title", Message: "is required"}
	}
	if in.Content == "" {
		return nil, &entity.ValidationError{Field: "content", Message: "is required"}
	}
	if err := entity.ValidateSourceURL(in.SourceURL); err != nil {
		return nil, fmt.Errorf("validate source URL: %w", err)
	}

	if s.Classifier == nil {
		return nil, ErrClassifierUnavailable
	}

	result, err := s.Classifier.Classify(ctx, in.Title, in.Content)
	if err != nil {
		return nil, fmt.Errorf("classify news: %w", err)
	}

	item := &entity.NewsItem{
		Title:           in.Title,
		OriginalContent: in.Content,
		SourceURL:       in.SourceURL,
		ReceivedAt:      time.Now().UTC(),
		Summary:         result.Summary,
		Sentiment:       result.Sentiment,
		SentimentScore:  result.SentimentScore,
		MentionedCoins:  result.MentionedCoins,
		IsMajor:         entity.IsMajorScore(result.SentimentScore, s.ThresholdLow, s.ThresholdHigh),
	}

	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}

	slog.InfoContext(ctx, "News ingested",
		slog.Int64("id", item.ID),
		slog.Float64("sentiment_score", item.SentimentScore),
		slog.Bool("is_major", item.IsMajor))

	if item.IsMajor && s.Notifier != nil {
		if err := s.Notifier.NotifyMajorNews(ctx, item); err != nil {
			slog.WarnContext(ctx, "major news notification dispatch failed",
				slog.Int64("id", item.ID),
				slog.String("error", err.Error()))
		}
	}

	s.triggerCleanup()

	return item, nil
}

// triggerCleanup runs the retention cleanup in a detached goroutine. The
// ingest request has already succeeded at this point, so a failing cleanup
// is logged and otherwise ignored.
func (s *Service) triggerCleanup() {
	if s.Cleaner == nil {
		return
	}

	timeout := s.CleanupTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if _, err := s.Cleaner.Cleanup(ctx, time.Now().UTC()); err != nil {
			slog.Error("background cleanup failed",
				slog.String("error", err.Error()))
		}
	}()
}
