// Package store persists sheets in Postgres.
//
// A sheet's cells are stored in a two-dimensional text[][] column, one array
// row per grid row. pgx maps it to [][]string in both directions, so cells
// come back byte for byte.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no sheet has the requested ID.
var ErrNotFound = errors.New("sheet not found")

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Record is one persisted sheet.
type Record struct {
	ID        uuid.UUID
	Name      string
	Cells     [][]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS sheets (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	cells      TEXT[][] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

const (
	upsertSheet = `
INSERT INTO sheets (id, name, cells, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, cells = EXCLUDED.cells, updated_at = EXCLUDED.updated_at`

	selectSheet = `SELECT id, name, cells, created_at, updated_at FROM sheets WHERE id = $1`

	selectSheets = `SELECT id, name, cells, created_at, updated_at FROM sheets ORDER BY created_at, id`

	deleteSheet = `DELETE FROM sheets WHERE id = $1`
)

// Store reads and writes sheets through a DBTX.
type Store struct {
	db DBTX
}

// New returns a Store backed by db.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the sheets table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create sheets table: %w", err)
	}
	return nil
}

// Save inserts or replaces rec. rec.Cells must be rectangular, as
// Postgres arrays are.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if _, err := s.db.Exec(ctx, upsertSheet, rec.ID, rec.Name, rec.Cells, rec.CreatedAt, rec.UpdatedAt); err != nil {
		return fmt.Errorf("save sheet %s: %w", rec.ID, err)
	}
	return nil
}

// Load returns the sheet with the given ID, or ErrNotFound.
func (s *Store) Load(ctx context.Context, id uuid.UUID) (Record, error) {
	rec, err := scanRecord(s.db.QueryRow(ctx, selectSheet, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, fmt.Errorf("load sheet %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("load sheet %s: %w", id, err)
	}
	return rec, nil
}

// List returns every stored sheet, oldest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Query(ctx, selectSheets)
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list sheets: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	return out, nil
}

// Delete removes the sheet with the given ID. Deleting a missing sheet
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, deleteSheet, id)
	if err != nil {
		return fmt.Errorf("delete sheet %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete sheet %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanRecord decodes one row. pgx.Rows satisfies pgx.Row's Scan.
func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Cells, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return Record{}, err
	}
	return rec, nil
}
