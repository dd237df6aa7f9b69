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

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled    bool
	WebhookURL string
	Timeout    time.Duration
}

// DiscordNotifier sends major-news alerts to Discord via webhook.
type DiscordNotifier struct {
	config     DiscordConfig
	httpClient *http.Client
	limiter    *RateLimiter
	retryCfg   retry.Config
}

// NewDiscordNotifier creates a Discord notifier. The rate limiter stays under
// the Discord webhook limit of 30 requests per minute.
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    NewRateLimiter(0.5, 3),
		retryCfg:   retry.WebhookConfig(),
	}
}

// discordPayload is the JSON body sent to a Discord webhook.
type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url"`
	Color       int                `json:"color"`
	Footer      discordEmbedFooter `json:"footer"`
	Timestamp   string             `json:"timestamp"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

const (
	maxTitleRunes       = 256
	maxDescriptionRunes = 4096
	truncationSuffix    = "..."
)

// Embed side colors per sentiment label.
const (
	colorPositive = 0x2ECC71
	colorNegative = 0xE74C3C
	colorNeutral  = 0x95A5A6
)

func sentimentColor(s entity.Sentiment) int {
	switch s {
	case entity.SentimentPositive:
		return colorPositive
	case entity.SentimentNegative:
		return colorNegative
	default:
		return colorNeutral
	}
}

func buildFooter(item *entity.NewsItem) string {
	footer := fmt.Sprintf("%s (%.2f)", item.Sentiment, item.SentimentScore)
	if len(item.MentionedCoins) > 0 {
		footer += " · " + strings.Join(item.MentionedCoins, ", ")
	}
	return footer
}

func (d *DiscordNotifier) buildPayload(item *entity.NewsItem) discordPayload {
	embed := discordEmbed{
		Title:       text.TruncateRunes(item.Title, maxTitleRunes, truncationSuffix),
		Description: text.TruncateRunes(item.Summary, maxDescriptionRunes, truncationSuffix),
		URL:         item.SourceURL,
		Color:       sentimentColor(item.Sentiment),
		Footer:      discordEmbedFooter{Text: buildFooter(item)},
		Timestamp:   item.ReceivedAt.Format(time.RFC3339),
	}
	return discordPayload{Embeds: []discordEmbed{embed}}
}

// NotifyNews implements the Notifier interface.
func (d *DiscordNotifier) NotifyNews(ctx context.Context, item *entity.NewsItem) error {
	requestID := requestid.FromContext(ctx)

	if err := d.limiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	payload := d.buildPayload(item)
	err := retry.WithBackoff(ctx, d.retryCfg, func() error {
		return postWebhook(ctx, d.httpClient, d.config.WebhookURL, payload)
	})
	if err != nil {
		return fmt.Errorf("discord notification: %w", err)
	}

	slog.Info("Discord notification sent",
		slog.String("request_id", requestID),
		slog.Int64("news_id", item.ID),
		slog.String("sentiment", string(item.Sentiment)))
	return nil
}
