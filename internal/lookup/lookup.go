// Package lookup reads the pid -> time-series-filename lookup table. The
// table ships with each dataset as a small SQLite file and is consumed by
// exact-match lookup on pid.
package lookup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// ErrPIDNotFound is returned when a pid has no lookup entry.
var ErrPIDNotFound = errors.New("lookup: pid not found")

// ErrDataNotFound is returned when the lookup database file is absent.
var ErrDataNotFound = errors.New("lookup: database file not found")

// Table is an open pid lookup database.
type Table struct {
	db *sql.DB
}

// Open opens an existing lookup database. The file must already exist;
// the sqlite driver would otherwise create an empty one and mask a broken
// dataset layout.
func Open(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("lookup: stat %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("lookup: open %s: %w", path, err)
	}
	return &Table{db: db}, nil
}

// Filename returns the time-series filename holding the given pid.
func (t *Table) Filename(pid string) (string, error) {
	var fname string
	err := t.db.QueryRow(
		`SELECT filename FROM pid_lookup WHERE pid = ?`, pid,
	).Scan(&fname)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrPIDNotFound, pid)
	}
	if err != nil {
		return "", fmt.Errorf("lookup: query pid %s: %w", pid, err)
	}
	return fname, nil
}

// Close closes the underlying database.
func (t *Table) Close() error {
	return t.db.Close()
}

// Create writes a new lookup database at path. Used by dataset ingest
// tooling and test fixtures.
func Create(path string, entries map[string]string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("lookup: create %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pid_lookup (
			pid       TEXT PRIMARY KEY,
			filename  TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("lookup: create schema: %w", err)
	}
	for pid, fname := range entries {
		if _, err := db.Exec(
			`INSERT OR REPLACE INTO pid_lookup (pid, filename) VALUES (?, ?)`,
			pid, fname,
		); err != nil {
			return fmt.Errorf("lookup: insert pid %s: %w", pid, err)
		}
	}
	return nil
}
