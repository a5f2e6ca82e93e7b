// Package storage persists the tracker's entities in a local SQLite file.
//
// Every query is a single statement (or a short check-then-write pair)
// against a shared connection pool; there are no cross-operation
// transactions. Ownership scoping is enforced in SQL: every mutation on a
// user-owned row filters by id AND user_id, and zero affected rows maps to
// core.ErrNotOwned.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at dbPath, runs
// migrations, and repairs legacy tables that predate per-user ownership.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// foreign_keys must be set per connection; the DSN pragma applies it to
	// every connection the pool opens.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Repair before migrating: the unique-index migration references
	// user_id, which legacy tables may not have yet.
	s := &Store{db: db}
	if err := s.RepairLegacyUserColumns(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repair legacy tables: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite exposes constraint errors only through the
// message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// requireOwnedRow turns "mutation touched no rows" into core.ErrNotOwned.
// Queries calling this always filter by id AND user_id, so an untouched row
// is either missing or owned by someone else; the caller cannot tell which,
// and must not be able to.
func requireOwnedRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotOwned
	}
	return nil
}
