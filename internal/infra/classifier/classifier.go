// Package classifier provides AI-powered news analysis implementations.
// It includes adapters for OpenAI-compatible APIs (DeepSeek, OpenAI) and
// Anthropic's Claude API, plus a NoOp fallback used when analysis is
// disabled. All implementations return a normalized Result with a canonical
// sentiment label and a score in [0, 1].
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/utils/text"
)

// ErrClassification wraps transport-level failures talking to the AI API.
var ErrClassification = errors.New("classification failed")

// ErrInvalidFormat indicates the AI returned a payload that could not be
// normalized into a Result (malformed JSON or missing required fields).
var ErrInvalidFormat = errors.New("invalid classification format")

// Result is a normalized news analysis.
type Result struct {
	Summary        string
	Sentiment      entity.Sentiment
	SentimentScore float64
	MentionedCoins []string
}

// Classifier analyzes a news article and returns a normalized Result.
type Classifier interface {
	Classify(ctx context.Context, title, content string) (*Result, error)
}

const systemPrompt = `You are a professional cryptocurrency financial analyst. Analyze the following news article.
You must provide:
1. 'summary': a concise summary of the news.
2. 'sentiment': whether the news is 'positive' (bullish), 'negative' (bearish), or 'neutral'.
3. 'sentiment_score': a normalized sentiment score where 0.0 is extremely bearish, 1.0 is extremely bullish, and 0.5 is neutral.
4. 'mentioned_coins': the ticker symbols of cryptocurrencies mentioned (e.g. BTC, ETH, SOL). Return an empty list if none.
Respond strictly in the requested JSON format.`

// payload mirrors the JSON object the AI is instructed to produce. Pointer
// fields distinguish an absent key from a zero value.
type payload struct {
	Summary        *string         `json:"summary"`
	Sentiment      *string         `json:"sentiment"`
	SentimentScore *float64        `json:"sentiment_score"`
	MentionedCoins json.RawMessage `json:"mentioned_coins"`
}

// decodeResult parses and normalizes a raw AI response:
//   - all four fields are required; a missing field is a hard failure
//   - a non-canonical sentiment label is rewritten from the raw score
//   - the score is clamped into [0, 1] after the label decision
//   - a mentioned_coins value that is not a string array degrades to []
func decodeResult(data []byte) (*Result, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	switch {
	case p.Summary == nil:
		return nil, fmt.Errorf("%w: missing required field: summary", ErrInvalidFormat)
	case p.Sentiment == nil:
		return nil, fmt.Errorf("%w: missing required field: sentiment", ErrInvalidFormat)
	case p.SentimentScore == nil:
		return nil, fmt.Errorf("%w: missing required field: sentiment_score", ErrInvalidFormat)
	case len(p.MentionedCoins) == 0:
		return nil, fmt.Errorf("%w: missing required field: mentioned_coins", ErrInvalidFormat)
	}

	rawScore := *p.SentimentScore

	sentiment := entity.Sentiment(*p.Sentiment)
	if !sentiment.Valid() {
		slog.Warn("non-canonical sentiment label, deriving from score",
			slog.String("sentiment", *p.Sentiment),
			slog.Float64("score", rawScore))
		sentiment = entity.SentimentFromScore(rawScore)
	}

	score := rawScore
	if score < 0 || score > 1 {
		slog.Warn("sentiment score out of range, clamping",
			slog.Float64("score", score))
		score = entity.ClampScore(score)
	}

	var coins []string
	if err := json.Unmarshal(p.MentionedCoins, &coins); err != nil {
		slog.Warn("mentioned_coins is not a string array, using empty list")
		coins = []string{}
	}
	if coins == nil {
		coins = []string{}
	}

	return &Result{
		Summary:        *p.Summary,
		Sentiment:      sentiment,
		SentimentScore: score,
		MentionedCoins: coins,
	}, nil
}

// buildUserPrompt combines title and body into the analysis request,
// truncating oversized content to stay well under model token limits.
func buildUserPrompt(title, content string) string {
	const maxRunes = 10000
	if runes := text.CountRunes(content); runes > maxRunes {
		slog.Warn("content truncated for classification",
			slog.Int("original_length", runes),
			slog.Int("truncated_length", maxRunes))
		content = text.TruncateRunes(content, maxRunes, "")
	}
	return fmt.Sprintf("Analyze the following news:\n\n%s\n\n%s", title, content)
}
