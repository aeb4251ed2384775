package repository

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS invoice_results (
	session_id TEXT NOT NULL,
	category   TEXT NOT NULL,
	amount     TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date   TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (session_id, category)
);
`

// Open creates the in-memory SQLite database backing the session result
// cache. The database lives and dies with the process: nothing survives a
// restart, which is exactly the persistence contract of the result set.
func Open(ctx context.Context, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", "file:results?mode=memory&cache=shared")
	if err != nil {
		logger.Error("failed to open results database", "error", err)
		return nil, err
	}
	// A single connection keeps the shared in-memory database alive and
	// sidesteps SQLITE_BUSY between connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		logger.Error("failed to create results schema", "error", err)
		_ = db.Close()
		return nil, err
	}

	logger.Info("results database ready")
	return db, nil
}

// Close closes the database gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close results database", "error", err)
	}
}
