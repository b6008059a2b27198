package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema creates the tables the pipeline writes. The unique index on
// source_url is the database-side half of the dedup contract.
const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id          BIGSERIAL PRIMARY KEY,
	external_id TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL,
	sub_title   TEXT NOT NULL DEFAULT '',
	img         TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL,
	exchange    TEXT NOT NULL,
	lang        TEXT NOT NULL,
	source_url  TEXT NOT NULL UNIQUE,
	created     BIGINT NOT NULL,
	inserted_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_articles_created ON articles (created DESC);

CREATE TABLE IF NOT EXISTS crawl_cursor (
	total INTEGER NOT NULL
);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
