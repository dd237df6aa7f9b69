package db

import "database/sql"

// MigrateUp creates the news_items table and its indexes.
// Statements are idempotent so the migration can run at every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS news_items (
    id               BIGSERIAL PRIMARY KEY,
    title            TEXT NOT NULL,
    original_content TEXT NOT NULL,
    source_url       TEXT NOT NULL,
    received_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    summary          TEXT NOT NULL,
    sentiment        VARCHAR(10) NOT NULL,
    sentiment_score  DOUBLE PRECISION NOT NULL,
    mentioned_coins  JSONB NOT NULL DEFAULT '[]'::jsonb,
    is_major         BOOLEAN NOT NULL DEFAULT FALSE
)`); err != nil {
		return err
	}

	// received_at drives retention cleanup, listing order, and the
	// market-sentiment window.
	if _, err := db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_news_items_received_at ON news_items(received_at DESC)`,
	); err != nil {
		return err
	}

	// sentiment_score feeds the aggregate extremes query.
	if _, err := db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_news_items_sentiment_score ON news_items(sentiment_score)`,
	); err != nil {
		return err
	}

	// Full-text index over title/content/summary for relevance-ranked search.
	// Created best-effort: when it fails (restricted permissions, exotic
	// deployments) the search path degrades to the ILIKE fallback.
	_, _ = db.Exec(`
CREATE INDEX IF NOT EXISTS idx_news_items_fts ON news_items
    USING gin(to_tsvector('english', title || ' ' || original_content || ' ' || summary))`)

	// pg_trgm speeds up the ILIKE fallback; also best-effort.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	_, _ = db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_news_items_title_trgm ON news_items USING gin(title gin_trgm_ops)`)

	return nil
}

// MigrateDown drops the news_items table and its indexes.
// Use with caution: this deletes all stored news items.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_news_items_title_trgm`,
		`DROP INDEX IF EXISTS idx_news_items_fts`,
		`DROP INDEX IF EXISTS idx_news_items_sentiment_score`,
		`DROP INDEX IF EXISTS idx_news_items_received_at`,
		`DROP TABLE IF EXISTS news_items`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
