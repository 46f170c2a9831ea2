// SPDX-License-Identifier: MIT

// Package store keeps the results of multi-seed fits in a SQLite database
// (pure-Go driver, no cgo) so runs from different invocations can be
// compared.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lh7326/UA-model-sub000/parameters"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("store: run not found")

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	family          TEXT NOT NULL,
	seed            INTEGER NOT NULL,
	chi_squared     REAL,
	task_name       TEXT NOT NULL,
	parameters_json TEXT NOT NULL,
	errors_json     TEXT NOT NULL,
	created_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_family_chi ON runs(family, chi_squared);
`

// Run is one stored result. ID and CreatedAt are filled by SaveRun when empty.
type Run struct {
	ID         string
	Family     string
	Seed       int64
	ChiSquared *float64
	TaskName   string
	Parameters []parameters.Parameter
	Errors     map[string]float64
	CreatedAt  time.Time
}

// Store is a handle on one results database. It is safe for concurrent use
// as far as database/sql is.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path and ensures the schema.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("store: schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun inserts r and returns its id.
func (s *Store) SaveRun(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	params, err := json.Marshal(r.Parameters)
	if err != nil {
		return "", fmt.Errorf("store: parameters: %w", err)
	}
	errs, err := json.Marshal(finite(r.Errors))
	if err != nil {
		return "", fmt.Errorf("store: errors: %w", err)
	}
	var chi sql.NullFloat64
	if r.ChiSquared != nil {
		chi = sql.NullFloat64{Float64: *r.ChiSquared, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, family, seed, chi_squared, task_name, parameters_json, errors_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Family, r.Seed, chi, r.TaskName, string(params), string(errs), r.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("store: insert %s: %w", r.ID, err)
	}

	return r.ID, nil
}

const selectColumns = `SELECT id, family, seed, chi_squared, task_name, parameters_json, errors_json, created_at FROM runs`

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return r, err
}

// Best returns up to limit runs of family with a χ², lowest first.
// An empty family matches every family.
func (s *Store) Best(ctx context.Context, family string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		WHERE chi_squared IS NOT NULL AND (? = '' OR family = ?)
		ORDER BY chi_squared ASC, seed ASC
		LIMIT ?`, family, family, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r            Run
		chi          sql.NullFloat64
		params, errs string
	)
	if err := sc.Scan(&r.ID, &r.Family, &r.Seed, &chi, &r.TaskName, &params, &errs, &r.CreatedAt); err != nil {
		return Run{}, err
	}
	if chi.Valid {
		v := chi.Float64
		r.ChiSquared = &v
	}
	if err := json.Unmarshal([]byte(params), &r.Parameters); err != nil {
		return Run{}, fmt.Errorf("store: run %s parameters: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(errs), &r.Errors); err != nil {
		return Run{}, fmt.Errorf("store: run %s errors: %w", r.ID, err)
	}

	return r, nil
}

// finite drops entries JSON cannot carry.
func finite(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}

	return out
}
