package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"benchguard/internal/measure"
)

// PostgresStore implements Store using PostgreSQL. It is meant for baselines
// shared across CI runs, where a local file or sqlite database would not
// survive the runner.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects with the given DSN and applies migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS measurement_sets (
		label TEXT PRIMARY KEY,
		suite TEXT NOT NULL DEFAULT '',
		revision TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		samples TEXT NOT NULL
	);`
	_, err := s.db.Exec(query)
	return err
}

// Put stores the set under its label, replacing any previous row.
func (s *PostgresStore) Put(ctx context.Context, set measure.Set) error {
	if err := set.Validate(); err != nil {
		return err
	}

	samples, err := json.Marshal(set.Samples)
	if err != nil {
		return fmt.Errorf("failed to marshal samples: %w", err)
	}

	query := `INSERT INTO measurement_sets (label, suite, revision, created_at, samples)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (label) DO UPDATE SET
			suite = EXCLUDED.suite,
			revision = EXCLUDED.revision,
			created_at = EXCLUDED.created_at,
			samples = EXCLUDED.samples`
	_, err = s.db.ExecContext(ctx, query,
		set.Label, set.Suite, set.Revision, set.CreatedAt.UTC(), string(samples))
	if err != nil {
		return fmt.Errorf("failed to store label %q: %w", set.Label, err)
	}
	return nil
}

// Get loads the set stored under label.
func (s *PostgresStore) Get(ctx context.Context, label string) (*measure.Set, error) {
	query := `SELECT label, suite, revision, created_at, samples
		FROM measurement_sets WHERE label = $1`
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
func (s *PostgresStore) Labels(ctx context.Context) ([]string, error) {
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
func (s *PostgresStore) Delete(ctx context.Context, label string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM measurement_sets WHERE label = $1`, label)
	if err != nil {
		return fmt.Errorf("failed to delete label %q: %w", label, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("label %q: %w", label, ErrNotFound)
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
