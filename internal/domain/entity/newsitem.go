// Package entity defines the core domain entities and validation logic for the
// application. It contains the NewsItem business object together with the
// sentiment scoring rules and domain-specific errors.
package entity

import "time"

// Sentiment is the classified market sentiment label of a news item.
type Sentiment string

// Canonical sentiment labels returned by the classifier.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether the label is one of the three canonical values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// NewsItem represents one crawler-submitted news item in the system.
// It is created once at ingestion time and never updated; retention cleanup
// is the only path that removes it.
type NewsItem struct {
	ID              int64
	Title           string
	OriginalContent string
	SourceURL       string
	ReceivedAt      time.Time
	Summary         string
	Sentiment       Sentiment
	SentimentScore  float64
	MentionedCoins  []string
	IsMajor         bool
}

// NeutralScore is the midpoint of the normalized sentiment scale and the
// score assigned when AI analysis is disabled.
const NeutralScore = 0.5

// FallbackSummaryRunes is how much of the original content becomes the
// summary when AI analysis is disabled.
const FallbackSummaryRunes = 200

// ClampScore forces a sentiment score into the normalized [0, 1] range.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// SentimentFromScore derives a canonical label from a normalized score.
// Scores above 0.6 are positive, below 0.4 negative, everything between
// (inclusive) neutral.
func SentimentFromScore(score float64) Sentiment {
	switch {
	case score > 0.6:
		return SentimentPositive
	case score < 0.4:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// IsMajorScore reports whether a score falls outside the configured neutral
// band. Scores exactly equal to a threshold are not major.
func IsMajorScore(score, lowThreshold, highThreshold float64) bool {
	return score < lowThreshold || score > highThreshold
}

// FallbackSummary truncates content to the first FallbackSummaryRunes
// characters. Counting is rune-based so multi-byte content is not split
// mid-character.
func FallbackSummary(content string) string {
	runes := []rune(content)
	if len(runes) <= FallbackSummaryRunes {
		return content
	}
	return string(runes[:FallbackSummaryRunes])
}
