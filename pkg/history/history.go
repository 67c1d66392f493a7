// Package history keeps a ledger of the files srcmake generated.
//
// The ledger is a single SQLite table. The pure Go driver is used by
// default; building with -tags cgo_sqlite switches to mattn/go-sqlite3.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/srcmake/srcmake/pkg/errors"
	"github.com/srcmake/srcmake/pkg/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS generated_files (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	language   TEXT NOT NULL,
	filetype   TEXT NOT NULL,
	name       TEXT NOT NULL,
	template   TEXT NOT NULL,
	status     TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS generated_files_created_at ON generated_files (created_at);
`

// timeLayout is fixed width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one generated file.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Path      string    `json:"path" yaml:"path"`
	Language  string    `json:"language" yaml:"language"`
	Filetype  string    `json:"filetype" yaml:"filetype"`
	Name      string    `json:"name" yaml:"name"`
	Template  string    `json:"template" yaml:"template"`
	Status    string    `json:"status" yaml:"status"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Store is an open ledger.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens or creates the ledger at path.
func Open(ctx context.Context, path string) (*Store, error) {
	logger := logging.GetLogger("history")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrHistoryOpen, "failed to create history directory for %s", path)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHistoryOpen, "failed to open history %s", path)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, errors.ErrHistoryOpen, "failed to migrate history %s", path)
	}

	logger.Debug().Str("path", path).Msg("History opened")
	return &Store{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Record appends an entry, filling a missing ID and timestamp. The stored
// entry is returned.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generated_files (id, path, language, filetype, name, template, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Path, e.Language, e.Filetype, e.Name, e.Template, e.Status,
		e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, errors.Wrapf(err, errors.ErrHistoryQuery, "failed to record %s", e.Path)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. A limit below one
// returns every entry.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, language, filetype, name, template, status, created_at
		 FROM generated_files ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryQuery, "failed to query history")
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Path, &e.Language, &e.Filetype, &e.Name, &e.Template, &e.Status, &created); err != nil {
			return nil, errors.Wrap(err, errors.ErrHistoryQuery, "failed to read history row")
		}
		e.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrHistoryQuery, "invalid timestamp %q in history", created)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrHistoryQuery, "failed to read history")
	}
	return entries, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
