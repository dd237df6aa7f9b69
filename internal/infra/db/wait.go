package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// schemaProbe touches the table MigrateUp creates. It succeeds as soon as the
// relation exists, even while it holds no rows.
const schemaProbe = "SELECT 1 FROM news_items LIMIT 1"

// WaitForSchema blocks until the news_items table exists, probing up to
// attempts times with the given delay between probes. Processes that do not
// run migrations themselves use it to wait for the API server to finish them.
func WaitForSchema(database *sql.DB, attempts int, delay time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if _, err = database.Exec(schemaProbe); err == nil {
			return nil
		}
		if i < attempts-1 {
			slog.Info("waiting for migrations",
				slog.Int("attempt", i+1),
				slog.Duration("retry_in", delay))
			time.Sleep(delay)
		}
	}
	return fmt.Errorf("schema not ready after %d attempts: %w", attempts, err)
}
