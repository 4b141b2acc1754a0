// Package state persists import records and submission history across
// kernel sessions. The engine itself treats records as opaque; only the
// source string drives de-duplication. Ownership of the record list sits
// here, in the integration layer, not in the core.
package state

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/leapscript/pkg/transform"
)

//go:embed schema.sql
var schemaSQL string

// Submission is one recorded code submission.
type Submission struct {
	ID            string
	Code          string
	CapturesValue bool
	CreatedAt     time.Time
}

// Store persists session state in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore returns an unopened store.
func NewStore() *Store {
	return &Store{}
}

// Open opens the SQLite database. Use ":memory:" for an in-memory store.
func (s *Store) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("ping state database: %w", err)
	}
	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the tables when missing.
func (s *Store) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("state database not opened")
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// RecordImport persists one import specifier set, de-duplicated by source.
// Returns true when the record was newly inserted.
func (s *Store) RecordImport(spec transform.ImportSpec) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("state database not opened")
	}

	payload, err := json.Marshal(spec)
	if err != nil {
		return false, fmt.Errorf("encode import spec: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO imports (id, source, spec) VALUES (?, ?, ?)`,
		uuid.New().String(), spec.Source, string(payload),
	)
	if err != nil {
		return false, fmt.Errorf("record import %q: %w", spec.Source, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListImports returns every persisted import record in insertion order.
func (s *Store) ListImports() ([]transform.ImportRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}

	rows, err := s.db.Query(`SELECT source, spec FROM imports ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list imports: %w", err)
	}
	defer rows.Close()

	var records []transform.ImportRecord
	for rows.Next() {
		var (
			source  string
			payload string
		)
		if err := rows.Scan(&source, &payload); err != nil {
			return nil, err
		}
		rec := transform.ImportRecord{Source: source}
		if err := json.Unmarshal([]byte(payload), &rec.Spec); err != nil {
			return nil, fmt.Errorf("decode import spec %q: %w", source, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RecordSubmission stores one submission and returns its id.
func (s *Store) RecordSubmission(code string, capturesValue bool) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("state database not opened")
	}

	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO submissions (id, code, captures_value) VALUES (?, ?, ?)`,
		id, code, capturesValue,
	)
	if err != nil {
		return "", fmt.Errorf("record submission: %w", err)
	}
	return id, nil
}

// ListSubmissions returns the most recent submissions, newest first.
func (s *Store) ListSubmissions(limit int) ([]Submission, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, code, captures_value, created_at FROM submissions
		 ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.Code, &sub.CapturesValue, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
