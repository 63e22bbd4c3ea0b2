// Package sqlite provides the storage handle backing the client registry
// and the billing ledger. One explicit *DB is opened at process start and
// passed into the services; there is no ambient global connection.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DBFileName is the database file inside the storage directory.
const DBFileName = "pflegedesk.db"

// DB wraps the sqlite connection. All SQL lives in this package.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database in dir and applies migrations.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	path := filepath.Join(dir, DBFileName)
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The posting transaction is the only multi-writer concern; a single
	// connection serializes it without busy-handler tuning.
	db.SetMaxOpenConns(1)

	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply migration: %w", err)
		}
	}

	return &DB{db: db}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.db.Close()
}

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// Care recipients with their budget depot
		`CREATE TABLE IF NOT EXISTS clients (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			name                 TEXT NOT NULL,
			care_level           INTEGER NOT NULL DEFAULT 0,
			entlastung_budget    REAL NOT NULL DEFAULT 0,
			verhinderung_budget  REAL NOT NULL DEFAULT 0,
			verwendet            REAL NOT NULL DEFAULT 0,
			created_at           TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		// Staff directory
		`CREATE TABLE IF NOT EXISTS caregivers (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			name          TEXT NOT NULL,
			qualification TEXT NOT NULL DEFAULT '',
			vacation_days REAL NOT NULL DEFAULT 0
		)`,

		// Immutable billing events
		`CREATE TABLE IF NOT EXISTS service_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id    INTEGER NOT NULL REFERENCES clients(id),
			caregiver_id INTEGER REFERENCES caregivers(id),
			date         TEXT NOT NULL,
			kind         TEXT NOT NULL,
			hours        REAL NOT NULL,
			rate         REAL NOT NULL,
			cost         REAL NOT NULL,
			receipt      TEXT NOT NULL UNIQUE,
			created_at   TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_client ON service_events(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_date ON service_events(date)`,
	}
}
