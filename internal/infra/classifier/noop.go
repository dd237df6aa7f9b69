package classifier

import (
	"context"

	"crypto-news/internal/domain/entity"
)

// NoOp is a classifier used when AI analysis is disabled. It produces a
// neutral result with a truncated copy of the content as the summary.
type NoOp struct{}

// NewNoOp creates a new NoOp classifier.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Classify returns the fallback analysis without calling any external API.
func (n *NoOp) Classify(_ context.Context, _, content string) (*Result, error) {
	return &Result{
		Summary:        entity.FallbackSummary(content),
		Sentiment:      entity.SentimentNeutral,
		SentimentScore: entity.NeutralScore,
		MentionedCoins: []string{},
	}, nil
}
