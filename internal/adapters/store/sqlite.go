package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
)

const leadsSchema = `
CREATE TABLE IF NOT EXISTS leads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    discovered_at TEXT NOT NULL
);`

// SQLiteStore implements ports.RowStore on a sqlite database. The table
// schema plays the role of the header row; the UNIQUE constraint on name
// backs up the ledger's single-write-per-name invariant at the storage
// layer.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the sqlite database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db}, nil
}

// ReadAll returns every lead row in insertion order. A database without
// the leads table yields domain.ErrStoreMissing.
func (s *SQLiteStore) ReadAll(ctx context.Context) ([]domain.Entry, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name='leads'`).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, domain.ErrStoreMissing
	}
	if err != nil {
		return nil, fmt.Errorf("check schema: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, discovered_at FROM leads ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("read leads: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var n, ts string
		if err := rows.Scan(&n, &ts); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		entries = append(entries, domain.EntryFromRow([]string{n, ts}))
	}
	return entries, rows.Err()
}

// Append inserts a single lead row.
func (s *SQLiteStore) Append(ctx context.Context, entry domain.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (name, discovered_at) VALUES (?, ?)`,
		entry.Name, entry.DiscoveredAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// Reset drops and recreates the leads table.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS leads`); err != nil {
		return fmt.Errorf("drop leads: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, leadsSchema); err != nil {
		return fmt.Errorf("create leads: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
