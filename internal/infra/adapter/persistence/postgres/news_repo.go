// Package postgres implements the news repository against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"crypto-news/internal/domain/entity"
	"crypto-news/internal/repository"
)

type NewsRepo struct {
	db *sql.DB
}

func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{db: db}
}

const newsColumns = `id, title, original_content, source_url, received_at,
       summary, sentiment, sentiment_score, mentioned_coins, is_major`

// scanItem reads one news_items row. mentioned_coins is stored as JSONB; a
// row with an unreadable payload degrades to an empty list rather than
// failing the whole query.
func scanItem(scan func(dest ...any) error) (*entity.NewsItem, error) {
	var item entity.NewsItem
	var coins []byte
	if err := scan(&item.ID, &item.Title, &item.OriginalContent, &item.SourceURL,
		&item.ReceivedAt, &item.Summary, &item.Sentiment, &item.SentimentScore,
		&coins, &item.IsMajor); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(coins, &item.MentionedCoins); err != nil || item.MentionedCoins == nil {
		item.MentionedCoins = []string{}
	}
	return &item, nil
}

func (repo *NewsRepo) Create(ctx context.Context, item *entity.NewsItem) error {
	const query = `
INSERT INTO news_items
       (title, original_content, source_url, received_at,
        summary, sentiment, sentiment_score, mentioned_coins, is_major)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

	coins := item.MentionedCoins
	if coins == nil {
		coins = []string{}
	}
	encoded, err := json.Marshal(coins)
	if err != nil {
		return fmt.Errorf("Create: marshal mentioned_coins: %w", err)
	}

	err = repo.db.QueryRowContext(ctx, query,
		item.Title, item.OriginalContent, item.SourceURL, item.ReceivedAt,
		item.Summary, item.Sentiment, item.SentimentScore, encoded, item.IsMajor,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.NewsItem, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM news_items
WHERE id = $1
LIMIT 1`, newsColumns)

	row := repo.db.QueryRowContext(ctx, query, id)
	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return item, nil
}

func (repo *NewsRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.NewsItem, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM news_items
ORDER BY received_at DESC
LIMIT $1 OFFSET $2`, newsColumns)

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows, limit, "ListPaginated")
}

func (repo *NewsRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM news_items`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// searchDocument is the text the full-text index covers.
const searchDocument = `to_tsvector('english', title || ' ' || original_content || ' ' || summary)`

func (repo *NewsRepo) SearchRanked(ctx context.Context, search string, minRank float64, offset, limit int) ([]*entity.NewsItem, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM news_items
WHERE %s @@ plainto_tsquery('english', $1)
  AND ts_rank(%s, plainto_tsquery('english', $1)) >= $2
ORDER BY ts_rank(%s, plainto_tsquery('english', $1)) DESC, received_at DESC
LIMIT $3 OFFSET $4`, newsColumns, searchDocument, searchDocument, searchDocument)

	rows, err := repo.db.QueryContext(ctx, query, search, minRank, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("SearchRanked: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows, limit, "SearchRanked")
}

func (repo *NewsRepo) CountRanked(ctx context.Context, search string, minRank float64) (int64, error) {
	query := fmt.Sprintf(`
SELECT COUNT(*)
FROM news_items
WHERE %s @@ plainto_tsquery('english', $1)
  AND ts_rank(%s, plainto_tsquery('english', $1)) >= $2`, searchDocument, searchDocument)

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, search, minRank).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountRanked: %w", err)
	}
	return count, nil
}

func (repo *NewsRepo) SearchSubstring(ctx context.Context, search string, offset, limit int) ([]*entity.NewsItem, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM news_items
WHERE title            ILIKE $1
   OR original_content ILIKE $1
   OR summary          ILIKE $1
ORDER BY received_at DESC
LIMIT $2 OFFSET $3`, newsColumns)

	param := "%" + search + "%"
	rows, err := repo.db.QueryContext(ctx, query, param, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("SearchSubstring: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows, limit, "SearchSubstring")
}

func (repo *NewsRepo) CountSubstring(ctx context.Context, search string) (int64, error) {
	const query = `
SELECT COUNT(*)
FROM news_items
WHERE title            ILIKE $1
   OR original_content ILIKE $1
   OR summary          ILIKE $1`

	param := "%" + search + "%"
	var count int64
	if err := repo.db.QueryRowContext(ctx, query, param).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountSubstring: %w", err)
	}
	return count, nil
}

func (repo *NewsRepo) SentimentStats(ctx context.Context, since time.Time) (*repository.SentimentStats, error) {
	const aggregate = `
SELECT COUNT(*),
       COALESCE(AVG(sentiment_score), 0),
       COALESCE(MAX(sentiment_score), 0),
       COALESCE(MIN(sentiment_score), 0)
FROM news_items
WHERE received_at >= $1`

	var stats repository.SentimentStats
	err := repo.db.QueryRowContext(ctx, aggregate, since).
		Scan(&stats.Count, &stats.Average, &stats.MaxScore, &stats.MinScore)
	if err != nil {
		return nil, fmt.Errorf("SentimentStats: %w", err)
	}
	if stats.Count == 0 {
		return nil, nil
	}

	// Extremes with a deterministic tie-break: earliest received_at wins,
	// then the smallest id.
	const extreme = `
SELECT id
FROM news_items
WHERE received_at >= $1 AND sentiment_score = $2
ORDER BY received_at ASC, id ASC
LIMIT 1`

	if err := repo.db.QueryRowContext(ctx, extreme, since, stats.MaxScore).Scan(&stats.MaxID); err != nil {
		return nil, fmt.Errorf("SentimentStats: max id: %w", err)
	}
	if err := repo.db.QueryRowContext(ctx, extreme, since, stats.MinScore).Scan(&stats.MinID); err != nil {
		return nil, fmt.Errorf("SentimentStats: min id: %w", err)
	}

	return &stats, nil
}

func (repo *NewsRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM news_items WHERE received_at < $1`
	res, err := repo.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: RowsAffected: %w", err)
	}
	return deleted, nil
}

// collectItems drains a result set into news items.
func collectItems(rows *sql.Rows, capacity int, op string) ([]*entity.NewsItem, error) {
	if capacity <= 0 {
		capacity = 100
	}
	items := make([]*entity.NewsItem, 0, capacity)
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
