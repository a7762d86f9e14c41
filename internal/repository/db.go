package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS source_document (
	id            TEXT PRIMARY KEY,
	filename      TEXT NOT NULL,
	file_ext      TEXT NOT NULL,
	file_size     INTEGER NOT NULL,
	content_hash  BLOB NOT NULL,
	text          TEXT NOT NULL,
	uploaded_at   TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_source_document_hash ON source_document(content_hash);

CREATE TABLE IF NOT EXISTS generate_job (
	id            TEXT PRIMARY KEY,
	document_id   TEXT NOT NULL REFERENCES source_document(id),
	status        TEXT NOT NULL,
	stage         TEXT,
	languages     TEXT NOT NULL,
	profiles      TEXT NOT NULL,
	error_message TEXT,
	bundle_path   TEXT,
	started_at    TEXT NOT NULL,
	finished_at   TEXT
);
CREATE INDEX IF NOT EXISTS idx_generate_job_document ON generate_job(document_id);
`

// Open opens (creating if needed) the sqlite store and applies the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening store", "path", path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite allows one writer; serialize through a single conn.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("store ready")
	return db, nil
}

// Close closes the store gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
			return
		}
	}
	logger.Info("store closed")
}

// HealthCheck pings the store to catch path/permission issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("pinging store")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("store health: %w", err)
	}
	return nil
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
