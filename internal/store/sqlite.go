package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"benchguard/internal/measure"
)

// SQLiteStore implements Store using SQLite. A single-statement upsert keeps
// Put atomic.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the database at path and
// applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS measurement_sets (
		label TEXT PRIMARY KEY,
		suite TEXT NOT NULL DEFAULT '',
		revision TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		samples TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Put stores the set under its label, replacing any previous row.
func (s *SQLiteStore) Put(ctx context.Context, set measure.Set) error {
	if err := set.Validate(); err != nil {
		return err
	}

	samples, err := json.Marshal(set.Samples)
	if err != nil {
		return fmt.Errorf("failed to marshal samples: %w", err)
	}

	query := `INSERT INTO measurement_sets (label, suite, revision, created_at, samples)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(label) DO UPDATE SET
			suite = excluded.suite,
			revision = excluded.revision,
			created_at = excluded.created_at,
			samples = excluded.samples`
	_, err = s.db.ExecContext(ctx, query,
		set.Label, set.Suite, set.Revision, set.CreatedAt.UTC(), string(samples))
	if err != nil {
		return fmt.Errorf("failed to store label %q: %w", set.Label, err)
	}
	return nil
}

// Get loads the set stored under label.
func (s *SQLiteStore) Get(ctx context.Context, label string) (*measure.Set, error) {
	query := `SELECT label, suite, revision, created_at, samples
		FROM measurement_sets WHERE label = ?`
	row := s.db.QueryRowContext(ctx, query, label)

	var set measure.Set
	var createdAt time.Time
	var samples string
	if err := row.Scan(&set.Label, &set.Suite, &set.Revision, &createdAt, &samples); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("label %q: %w", label, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load label %q: %w", label, err)
	}
	set.CreatedAt = createdAt

	if err := json.Unmarshal([]byte(samples), &set.Samples); err != nil {
		return nil, fmt.Errorf("failed to unmarshal samples for %q: %w", label, err)
	}
	return &set, nil
}

// Labels returns the stored labels in sorted order.
func (s *SQLiteStore) Labels(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label FROM measurement_sets ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// Delete removes the set stored under label.
func (s *SQLiteStore) Delete(ctx context.Context, label string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM measurement_sets WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("failed to delete label %q: %w", label, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("label %q: %w", label, ErrNotFound)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
