// Package history keeps a record of past planning runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("run not found")

// Entry is one stored planning run. Payload holds the full run as JSON.
type Entry struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Label        string          `json:"label"`
	Strategy     string          `json:"strategy"`
	AverageScore float64         `json:"average_score"`
	GlobalFlags  []string        `json:"global_flags"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// SQLiteStore stores entries in a single SQLite table keyed by ULID.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS planning_runs (
		id            TEXT PRIMARY KEY,
		created_at    TEXT NOT NULL,
		label         TEXT NOT NULL DEFAULT '',
		strategy      TEXT NOT NULL DEFAULT '',
		average_score REAL NOT NULL,
		global_flags  TEXT NOT NULL DEFAULT '[]',
		payload       TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS idx_planning_runs_created ON planning_runs(created_at);
	`)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores e, assigning an ID and creation time when they are unset.
func (s *SQLiteStore) Save(ctx context.Context, e Entry) (Entry, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	if e.ID == "" {
		e.ID = ulid.MustNew(ulid.Timestamp(e.CreatedAt), ulid.DefaultEntropy()).String()
	}
	if e.GlobalFlags == nil {
		e.GlobalFlags = []string{}
	}
	if len(e.Payload) == 0 {
		e.Payload = json.RawMessage("{}")
	}

	flags, err := json.Marshal(e.GlobalFlags)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal flags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO planning_runs (id, created_at, label, strategy, average_score, global_flags, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.Format(time.RFC3339Nano), e.Label, e.Strategy, e.AverageScore, string(flags), string(e.Payload))
	if err != nil {
		return Entry{}, fmt.Errorf("insert run: %w", err)
	}
	return e, nil
}

// Get loads one entry including its payload.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, label, strategy, average_score, global_flags, payload
		FROM planning_runs WHERE id = ?`, id)
	e, err := scanEntry(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// List returns the most recent entries first, without payloads.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, label, strategy, average_score, global_flags, ''
		FROM planning_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner, withPayload bool) (Entry, error) {
	var (
		e         Entry
		createdAt string
		flags     string
		payload   string
	)
	if err := sc.Scan(&e.ID, &createdAt, &e.Label, &e.Strategy, &e.AverageScore, &flags, &payload); err != nil {
		return Entry{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at: %w", err)
	}
	e.CreatedAt = t
	if err := json.Unmarshal([]byte(flags), &e.GlobalFlags); err != nil {
		return Entry{}, fmt.Errorf("decode flags: %w", err)
	}
	if withPayload {
		e.Payload = json.RawMessage(payload)
	}
	return e, nil
}
