package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"crypto-news/internal/domain/entity"
)

func TestDecodeResult(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Result
		wantErr bool
	}{
		{
			name:  "canonical response",
			input: `{"summary":"BTC rallies","sentiment":"positive","sentiment_score":0.9,"mentioned_coins":["BTC"]}`,
			want: &Result{
				Summary:        "BTC rallies",
				Sentiment:      entity.SentimentPositive,
				SentimentScore: 0.9,
				MentionedCoins: []string{"BTC"},
			},
		},
		{
			name:  "non-canonical label rewritten from high score",
			input: `{"summary":"s","sentiment":"bullish","sentiment_score":0.9,"mentioned_coins":[]}`,
			want: &Result{
				Summary:        "s",
				Sentiment:      entity.SentimentPositive,
				SentimentScore: 0.9,
				MentionedCoins: []string{},
			},
		},
		{
			name:  "non-canonical label rewritten from low score",
			input: `{"summary":"s","sentiment":"Bearish","sentiment_score":0.1,"mentioned_coins":[]}`,
			want: &Result{
				Summary:        "s",
				Sentiment:      entity.SentimentNegative,
				SentimentScore: 0.1,
				MentionedCoins: []string{},
			},
		},
		{
			name:  "non-canonical label rewritten from mid score",
			input: `{"summary":"s","sentiment":"mixed","sentiment_score":0.5,"mentioned_coins":[]}`,
			want: &Result{
				Summary:        "s",
				Sentiment:      entity.SentimentNeutral,
				SentimentScore: 0.5,
				MentionedCoins: []string{},
			},
		},
		{
			name:  "score above range clamped",
			input: `{"summary":"s","sentiment":"positive","sentiment_score":1.7,"mentioned_coins":[]}`,
			want: &Result{
				Summary:        "s",
				Sentiment:      entity.SentimentPositive,
				SentimentScore: 1.0,
				MentionedCoins: []string{},
			},
		},
		{
			name:  "score below range clamped",
			input: `{"summary":"s","sentiment":"negative","sentiment_score":-0.3,"mentioned_coins":[]}`,
			want: &Result{
				Summary:        "s",
				Sentiment:      entity.SentimentNegative,
				SentimentScore: 0.0,
				MentionedCoins: []string{},
			},
		},
		{
			name:  "coins not an array degrades to empty",
			input: `{"summary":"s","sentiment":"neutral","sentiment_score":0.5,"mentioned_coins":"BTC"}`,
			want: &Result{
				Summary:        "s",
				Sentiment:      entity.SentimentNeutral,
				SentimentScore: 0.5,
				MentionedCoins: []string{},
			},
		},
		{
			name:  "coins null degrades to empty",
			input: `{"summary":"s","sentiment":"neutral","sentiment_score":0.5,"mentioned_coins":null}`,
			want: &Result{
				Summary:        "s",
				Sentiment:      entity.SentimentNeutral,
				SentimentScore: 0.5,
				MentionedCoins: []string{},
			},
		},
		{
			name:    "missing summary",
			input:   `{"sentiment":"neutral","sentiment_score":0.5,"mentioned_coins":[]}`,
			wantErr: true,
		},
		{
			name:    "missing sentiment",
			input:   `{"summary":"s","sentiment_score":0.5,"mentioned_coins":[]}`,
			wantErr: true,
		},
		{
			name:    "missing score",
			input:   `{"summary":"s","sentiment":"neutral","mentioned_coins":[]}`,
			wantErr: true,
		},
		{
			name:    "missing coins",
			input:   `{"summary":"s","sentiment":"neutral","sentiment_score":0.5}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			input:   `{"summary": "s",`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeResult([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("decodeResult() err=nil, want error")
				}
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("decodeResult() err=%v, want ErrInvalidFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeResult() err=%v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("decodeResult() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNoOpClassify(t *testing.T) {
	long := strings.Repeat("x", 450)

	got, err := NewNoOp().Classify(context.Background(), "title", long)
	if err != nil {
		t.Fatalf("Classify err=%v", err)
	}

	if len([]rune(got.Summary)) != entity.FallbackSummaryRunes {
		t.Fatalf("summary length=%d want %d", len([]rune(got.Summary)), entity.FallbackSummaryRunes)
	}
	if got.Sentiment != entity.SentimentNeutral {
		t.Fatalf("sentiment=%q want neutral", got.Sentiment)
	}
	if got.SentimentScore != entity.NeutralScore {
		t.Fatalf("score=%v want %v", got.SentimentScore, entity.NeutralScore)
	}
	if got.MentionedCoins == nil || len(got.MentionedCoins) != 0 {
		t.Fatalf("coins=%v want empty slice", got.MentionedCoins)
	}
}

func TestBuildUserPromptTruncates(t *testing.T) {
	content := strings.Repeat("a", 20000)
	prompt := buildUserPrompt("t", content)
	if len(prompt) > 11000 {
		t.Fatalf("prompt length=%d, content not truncated", len(prompt))
	}
}
