// Package db provides SQLite storage for sweep analysis history.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dealscope/sweep/internal/logging"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id            TEXT PRIMARY KEY,
	source        TEXT NOT NULL,
	sheet         TEXT,
	index_field   TEXT NOT NULL,
	action_field  TEXT NOT NULL,
	filters_json  TEXT,
	record_count  INTEGER NOT NULL,
	runs_json     TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_source ON analyses(source);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`

// DB wraps the SQLite handle.
type DB struct {
	*sql.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	handle.SetMaxOpenConns(1)

	db := &DB{DB: handle, logger: logging.Component("db")}
	if err := db.migrate(context.Background()); err != nil {
		handle.Close()
		return nil, err
	}

	db.logger.Debug().Str("path", path).Msg("database opened")
	return db, nil
}

func (db *DB) migrate(ctx context.Context) error {
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("pragma: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
