// Package news provides HTTP handlers for the news endpoints: push,
// listing, detail and market sentiment.
package news

import (
	"time"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/usecase/news"
)

// ItemDTO represents the JSON structure for a news item.
type ItemDTO struct {
	ID              int64     `json:"id" example:"1"`
	Title           string    `json:"title" example:"Bitcoin breaks $100k"`
	Summary         string    `json:"summary" example:"BTC reached a new all-time high..."`
	Sentiment       string    `json:"sentiment" example:"positive"`
	SentimentScore  float64   `json:"sentiment_score" example:"0.92"`
	MentionedCoins  []string  `json:"mentioned_coins" example:"BTC,ETH"`
	SourceURL       string    `json:"source_url" example:"https://example.com/news/1"`
	ReceivedAt      time.Time `json:"received_at" example:"2026-08-31T10:00:00Z"`
	IsMajor         bool      `json:"is_major" example:"true"`
	OriginalContent string    `json:"original_content"`
}

func toItemDTO(item *entity.NewsItem) ItemDTO {
	coins := item.MentionedCoins
	if coins == nil {
		coins = []string{}
	}
	return ItemDTO{
		ID:              item.ID,
		Title:           item.Title,
		Summary:         item.Summary,
		Sentiment:       string(item.Sentiment),
		SentimentScore:  item.SentimentScore,
		MentionedCoins:  coins,
		SourceURL:       item.SourceURL,
		ReceivedAt:      item.ReceivedAt,
		IsMajor:         item.IsMajor,
		OriginalContent: item.OriginalContent,
	}
}

// PushResponse is returned after a successful news ingestion.
type PushResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"News received and analyzed."`
	ID      int64  `json:"id" example:"1"`
}

// ListResponse is one page of news items with pagination fields.
type ListResponse struct {
	Items      []ItemDTO `json:"items"`
	Total      int64     `json:"total" example:"42"`
	Page       int       `json:"page" example:"1"`
	PageSize   int       `json:"page_size" example:"20"`
	TotalPages int       `json:"total_pages" example:"3"`
}

// SentimentResponse is the aggregate market sentiment over the window.
// Extrema fields are omitted when the window holds no items.
type SentimentResponse struct {
	MarketSentimentNormalized float64  `json:"market_sentiment_normalized" example:"0.6234"`
	NewsCount                 int64    `json:"news_count" example:"17"`
	MaxScore                  *float64 `json:"max_score,omitempty" example:"0.95"`
	MinScore                  *float64 `json:"min_score,omitempty" example:"0.12"`
	MaxScoreNewsID            *int64   `json:"max_score_news_id,omitempty" example:"3"`
	MinScoreNewsID            *int64   `json:"min_score_news_id,omitempty" example:"9"`
}

func toSentimentResponse(ms *news.MarketSentiment) SentimentResponse {
	return SentimentResponse{
		MarketSentimentNormalized: ms.Average,
		NewsCount:                 ms.Count,
		MaxScore:                  ms.MaxScore,
		MinScore:                  ms.MinScore,
		MaxScoreNewsID:            ms.MaxID,
		MinScoreNewsID:            ms.MinID,
	}
}
