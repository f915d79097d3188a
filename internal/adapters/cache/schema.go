package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres cache schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSpeedLimitCacheQuery := `
	CREATE TABLE IF NOT EXISTS speed_limit_cache (
        place_id TEXT PRIMARY KEY,
        speed_limit DOUBLE PRECISION NOT NULL,
        units TEXT NOT NULL,
        fetched_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	if _, err := tx.Exec(createSpeedLimitCacheQuery); err != nil {
		return fmt.Errorf("init schema: create speed_limit_cache table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}
