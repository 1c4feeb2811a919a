package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id            UUID PRIMARY KEY,
		owner         TEXT        NOT NULL,
		module_id     TEXT        NOT NULL,
		module_name   TEXT        NOT NULL,
		mode          TEXT        NOT NULL,
		total_asked   INTEGER     NOT NULL,
		total_correct INTEGER     NOT NULL,
		started_at    TIMESTAMPTZ NOT NULL,
		finished_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_results_owner_finished_idx ON quiz_results (owner, finished_at DESC)`,
	`CREATE TABLE IF NOT EXISTS quiz_wrong_answers (
		id             BIGSERIAL PRIMARY KEY,
		result_id      UUID NOT NULL REFERENCES quiz_results (id) ON DELETE CASCADE,
		word           TEXT NOT NULL,
		definition     TEXT NOT NULL,
		question       TEXT NOT NULL,
		user_answer    TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		answered_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		owner      TEXT        NOT NULL,
		word       TEXT        NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (owner, word)
	)`,
}

// EnsureSchema creates the history tables when they do not exist.
func EnsureSchema(ctx context.Context, db DBTX) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
