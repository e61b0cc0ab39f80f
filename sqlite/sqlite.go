// Package sqlite provides SQLite-based storage implementations for baysearch services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Enable foreign key constraints
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			source_url TEXT NOT NULL DEFAULT '',
			result_hash TEXT NOT NULL DEFAULT '',
			total INTEGER NOT NULL DEFAULT 0,
			zip TEXT NOT NULL DEFAULT '',
			condition_counts TEXT NOT NULL DEFAULT '{}',
			fetched_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS listings (
			search_id TEXT NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			is_ad INTEGER NOT NULL DEFAULT 0,
			listing_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			newly INTEGER NOT NULL DEFAULT 0,
			condition TEXT NOT NULL DEFAULT 'unknown',
			auction INTEGER NOT NULL DEFAULT 0,
			buy_now INTEGER NOT NULL DEFAULT 0,
			allows_offer INTEGER NOT NULL DEFAULT 0,
			price_range INTEGER NOT NULL DEFAULT 0,
			plus INTEGER NOT NULL DEFAULT 0,
			price REAL NOT NULL DEFAULT -1,
			shipping REAL NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT '',
			image_id TEXT NOT NULL DEFAULT '',
			image_variant TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (search_id, is_ad, position)
		);

		CREATE INDEX IF NOT EXISTS idx_searches_query ON searches(query);
		CREATE INDEX IF NOT EXISTS idx_listings_search_id ON listings(search_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
