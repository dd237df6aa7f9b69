package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"crypto-news/internal/config"
)

// OpenAI implements the Classifier interface against any OpenAI-compatible
// chat completion API (OpenAI itself, DeepSeek, or other providers exposing
// the same wire format). The endpoint is selected via the configured API
// base URL.
type OpenAI struct {
	client          *openai.Client
	model           string
	timeout         time.Duration
	limiter         *rate.Limiter
	metricsRecorder ClassificationMetricsRecorder
}

// NewOpenAI creates an OpenAI-compatible classifier from the given
// configuration. A non-positive rate limit disables call pacing.
func NewOpenAI(cfg config.ClassifierConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIBase != "" {
		clientCfg.BaseURL = cfg.APIBase
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	slog.Info("Initialized OpenAI-compatible classifier",
		slog.String("model", cfg.Model),
		slog.String("api_base", cfg.APIBase),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAI{
		client:          openai.NewClientWithConfig(clientCfg),
		model:           cfg.Model,
		timeout:         cfg.Timeout,
		limiter:         limiter,
		metricsRecorder: NewPrometheusClassificationMetrics(),
	}
}

// Classify analyzes the article via a JSON-mode chat completion and
// normalizes the response.
func (o *OpenAI) Classify(ctx context.Context, title, content string) (*Result, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate wait: %v", ErrClassification, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(title, content)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.3,
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Classification failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		o.metricsRecorder.RecordOutcome("api_error")
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "Classification returned empty response",
			slog.Duration("duration", duration))
		o.metricsRecorder.RecordOutcome("empty_response")
		return nil, fmt.Errorf("%w: empty response", ErrClassification)
	}

	result, err := decodeResult([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		slog.ErrorContext(ctx, "Classification response rejected",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		o.metricsRecorder.RecordOutcome("invalid_format")
		return nil, err
	}

	slog.InfoContext(ctx, "Classification completed",
		slog.String("sentiment", string(result.Sentiment)),
		slog.Float64("score", result.SentimentScore),
		slog.Int("coins", len(result.MentionedCoins)),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordOutcome("success")
	o.metricsRecorder.RecordDuration(duration)
	return result, nil
}
