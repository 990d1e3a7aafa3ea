// Package profilestore is the SQLite-backed store for people profiles and the
// skills they hold. It owns its own skill vocabulary; reconciliation with the
// job store happens by skill name only.
package profilestore

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/dewansh3255/SPARK/internal/sqlitedb"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a requested profile does not exist.
var ErrNotFound = errors.New("profilestore: not found")

// Store wraps the profiles SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) profiles.db in dataDir and runs pending migrations.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	db, err := sqlitedb.Open(dataDir, "profiles.db", migrationsFS)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
