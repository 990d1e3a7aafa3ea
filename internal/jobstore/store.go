// Package jobstore is the SQLite-backed store for open job postings and the
// skills they require. Its skill vocabulary is independent of the profile
// store's; the two are reconciled by skill name only.
package jobstore

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/dewansh3255/SPARK/internal/sqlitedb"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a requested job does not exist.
var ErrNotFound = errors.New("jobstore: not found")

// Store wraps the jobs SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) jobs.db in dataDir and runs pending migrations.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	db, err := sqlitedb.Open(dataDir, "jobs.db", migrationsFS)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
