// Package store persists the profile, settings and audit log in SQLite.
// Profile and settings are opaque versioned JSON blobs in a kv table;
// audit entries get their own table so retention trimming stays a single
// DELETE. Missing-key reads return documented defaults; write failures
// always propagate.
package store

import (
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/raysh454/formpilot/internal/interfaces"
)

//go:embed schema.sql
var schemaFS embed.FS

const (
	keyProfile  = "fp_profile_v1"
	keySettings = "fp_settings_v1"

	schemaVersion = 1
)

// Store implements interfaces.ProfileStore, SettingsStore and AuditStore
// on one SQLite database.
type Store struct {
	db     *sql.DB
	logger interfaces.Logger
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, logger interfaces.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	s, err := New(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle (tests use in-memory SQLite) and
// applies pragmas plus the schema.
func New(db *sql.DB, logger interfaces.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
