package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"crypto-news/internal/config"
)

// Claude implements the Classifier interface using Anthropic's Claude API.
// Claude has no JSON response mode, so the prompt instructs it to emit a
// bare JSON object and the response goes through the same strict decoder
// as the OpenAI adapter.
type Claude struct {
	client          anthropic.Client
	model           string
	timeout         time.Duration
	limiter         *rate.Limiter
	metricsRecorder ClassificationMetricsRecorder
}

// NewClaude creates a Claude classifier from the given configuration.
func NewClaude(cfg config.ClassifierConfig) *Claude {
	model := cfg.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_5_20250929)
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	slog.Info("Initialized Claude classifier",
		slog.String("model", model),
		slog.Duration("timeout", cfg.Timeout))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:           model,
		timeout:         cfg.Timeout,
		limiter:         limiter,
		metricsRecorder: NewPrometheusClassificationMetrics(),
	}
}

// Classify analyzes the article via the Messages API and normalizes the
// response.
func (c *Claude) Classify(ctx context.Context, title, content string) (*Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate wait: %v", ErrClassification, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := buildUserPrompt(title, content) +
		"\n\nRespond with a single JSON object and nothing else."

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Classification failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		c.metricsRecorder.RecordOutcome("api_error")
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Classification returned empty response",
			slog.Duration("duration", duration))
		c.metricsRecorder.RecordOutcome("empty_response")
		return nil, fmt.Errorf("%w: empty response", ErrClassification)
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Classification returned unexpected content type",
			slog.Duration("duration", duration))
		c.metricsRecorder.RecordOutcome("empty_response")
		return nil, fmt.Errorf("%w: unexpected response type", ErrClassification)
	}

	result, err := decodeResult([]byte(textBlock.Text))
	if err != nil {
		slog.ErrorContext(ctx, "Classification response rejected",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		c.metricsRecorder.RecordOutcome("invalid_format")
		return nil, err
	}

	slog.InfoContext(ctx, "Classification completed",
		slog.String("sentiment", string(result.Sentiment)),
		slog.Float64("score", result.SentimentScore),
		slog.Int("coins", len(result.MentionedCoins)),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordOutcome("success")
	c.metricsRecorder.RecordDuration(duration)
	return result, nil
}
