package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DBExecutor is satisfied by *sql.DB and *sql.Tx.
type DBExecutor interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id            TEXT PRIMARY KEY,
		owner         TEXT    NOT NULL,
		module_id     TEXT    NOT NULL,
		module_name   TEXT    NOT NULL,
		mode          TEXT    NOT NULL,
		total_asked   INTEGER NOT NULL,
		total_correct INTEGER NOT NULL,
		started_at    TEXT    NOT NULL,
		finished_at   TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS quiz_results_owner_finished_idx ON quiz_results (owner, finished_at)`,
	`CREATE TABLE IF NOT EXISTS quiz_wrong_answers (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		result_id      TEXT NOT NULL REFERENCES quiz_results (id) ON DELETE CASCADE,
		word           TEXT NOT NULL,
		definition     TEXT NOT NULL,
		question       TEXT NOT NULL,
		user_answer    TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		answered_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		owner      TEXT NOT NULL,
		word       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (owner, word)
	)`,
}

// Open opens the database at path, creating the parent directory, and runs
// the migrations. ":memory:" opens a private in-memory database.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// sqlite allows a single writer; an in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if err := InitDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// InitDB applies the schema. It is safe to run on an existing database.
func InitDB(db DBExecutor) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
