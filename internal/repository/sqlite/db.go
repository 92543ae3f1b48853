package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"adcheck/internal/config"
)

// NewDB opens the embedded SQLite database and creates the schema if needed.
func NewDB(cfg *config.StoreConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// modernc sqlite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS scene_sets (
	name       TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS history (
	id           TEXT PRIMARY KEY,
	session_id   TEXT NOT NULL,
	track        TEXT NOT NULL,
	file_name    TEXT NOT NULL,
	ad_type      TEXT NOT NULL DEFAULT '',
	total        INTEGER NOT NULL,
	passed       INTEGER NOT NULL,
	failed       INTEGER NOT NULL,
	needs_review INTEGER NOT NULL,
	completed_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_completed_at ON history(completed_at DESC);
`
