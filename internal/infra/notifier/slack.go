package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/handler/http/requestid"
	"crypto-news/internal/resilience/retry"
	"crypto-news/internal/utils/text"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// SlackNotifier sends major-news alerts to Slack via incoming webhook.
type SlackNotifier struct {
	config     SlackConfig
	httpClient *http.Client
	limiter    *RateLimiter
	retryCfg   retry.Config
}

// NewSlackNotifier creates a Slack notifier. Slack asks incoming webhooks to
// stay around one message per second.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    NewRateLimiter(1.0, 3),
		retryCfg:   retry.WebhookConfig(),
	}
}

// slackPayload is the JSON body sent to a Slack incoming webhook.
type slackPayload struct {
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	TitleLink string       `json:"title_link"`
	Text      string       `json:"text"`
	Fields    []slackField `json:"fields"`
	Footer    string       `json:"footer"`
	Ts        int64        `json:"ts"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func slackColor(s entity.Sentiment) string {
	switch s {
	case entity.SentimentPositive:
		return "#2ecc71"
	case entity.SentimentNegative:
		return "#e74c3c"
	default:
		return "#95a5a6"
	}
}

func (s *SlackNotifier) buildPayload(item *entity.NewsItem) slackPayload {
	fields := []slackField{
		{Title: "Sentiment", Value: fmt.Sprintf("%s (%.2f)", item.Sentiment, item.SentimentScore), Short: true},
	}
	if len(item.MentionedCoins) > 0 {
		fields = append(fields, slackField{
			Title: "Coins",
			Value: text.TruncateRunes(strings.Join(item.MentionedCoins, ", "), 128, truncationSuffix),
			Short: true,
		})
	}

	attachment := slackAttachment{
		Color:     slackColor(item.Sentiment),
		Title:     text.TruncateRunes(item.Title, maxTitleRunes, truncationSuffix),
		TitleLink: item.SourceURL,
		Text:      text.TruncateRunes(item.Summary, maxDescriptionRunes, truncationSuffix),
		Fields:    fields,
		Footer:    "crypto-news",
		Ts:        item.ReceivedAt.Unix(),
	}
	return slackPayload{Attachments: []slackAttachment{attachment}}
}

// NotifyNews implements the Notifier interface.
func (s *SlackNotifier) NotifyNews(ctx context.Context, item *entity.NewsItem) error {
	requestID := requestid.FromContext(ctx)

	if err := s.limiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	payload := s.buildPayload(item)
	err := retry.WithBackoff(ctx, s.retryCfg, func() error {
		return postWebhook(ctx, s.httpClient, s.config.WebhookURL, payload)
	})
	if err != nil {
		return fmt.Errorf("slack notification: %w", err)
	}

	slog.Info("Slack notification sent",
		slog.String("request_id", requestID),
		slog.Int64("news_id", item.ID),
		slog.String("sentiment", string(item.Sentiment)))
	return nil
}
