// Package store archives analysis summaries in a SQLite database.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/strenlab/tensile/internal/material"
	"github.com/strenlab/tensile/internal/report"
)

//go:embed schema.sql
var schemaSQL string

// Fixed width so that created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("store: record not found")

// Record is one archived analysis.
type Record struct {
	ID        string // UUIDv7, time ordered
	Source    string // input file
	CreatedAt time.Time
	Summary   report.Summary
}

// NewRecord creates a record for a result with a fresh id.
func NewRecord(source string, r *material.Result) Record {
	return Record{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Summary:   report.NewSummary(r),
	}
}

// Store provides durable storage for analysis records.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path. Safe to call on an existing
// database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Save inserts a record. A missing id or timestamp is filled in.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.Must(uuid.NewV7()).String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	summary, err := json.Marshal(rec.Summary)
	if err != nil {
		return fmt.Errorf("save %s: marshal summary: %w", rec.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses
		(id, specimen, source, created_at, youngs_modulus, yield_stress, uts, toughness, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Summary.Name,
		rec.Source,
		rec.CreatedAt.UTC().Format(timeLayout),
		rec.Summary.YoungsModulus,
		rec.Summary.YieldStress,
		rec.Summary.UTS,
		rec.Summary.Toughness,
		string(summary),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the records of a specimen, newest first. An empty name
// lists every record.
func (s *Store) List(ctx context.Context, name string) ([]Record, error) {
	query := `SELECT id, source, created_at, summary FROM analyses`
	var args []any
	if name != "" {
		query += ` WHERE specimen = ?`
		args = append(args, name)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return records, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, created_at, summary FROM analyses WHERE id = ?
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", id, err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec       Record
		createdAt string
		summary   string
	)
	if err := sc.Scan(&rec.ID, &rec.Source, &createdAt, &summary); err != nil {
		return Record{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = t
	if err := json.Unmarshal([]byte(summary), &rec.Summary); err != nil {
		return Record{}, fmt.Errorf("unmarshal summary: %w", err)
	}
	return rec, nil
}
