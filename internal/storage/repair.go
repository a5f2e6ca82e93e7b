package storage

import (
	"fmt"
	"log/slog"
)

// Databases written by the first release had no user accounts, so its child
// tables lack a user_id column. The repair backfills ownership to a default
// user so foreign keys hold. One-shot: tables that already have the column
// are left untouched.

const (
	defaultUserID       = 1
	defaultUserName     = "default_user"
	defaultUserPassword = "password123"
)

var ownedTables = []string{"categories", "expenses", "recurring_payments", "budgets"}

// RepairLegacyUserColumns adds a user_id column to any owned table missing
// one, assigns the existing rows to the default user, and makes sure that
// user exists.
func (s *Store) RepairLegacyUserColumns() error {
	for _, table := range ownedTables {
		exists, err := s.tableExists(table)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", table, err)
		}
		if !exists {
			// Fresh database; migrations will create it with user_id.
			continue
		}

		has, err := s.hasColumn(table, "user_id")
		if err != nil {
			return fmt.Errorf("inspect %s: %w", table, err)
		}
		if has {
			continue
		}

		if _, err := s.db.Exec(
			fmt.Sprintf("ALTER TABLE %s ADD COLUMN user_id INTEGER NOT NULL DEFAULT %d", table, defaultUserID),
		); err != nil {
			return fmt.Errorf("add user_id to %s: %w", table, err)
		}
		if _, err := s.db.Exec(
			fmt.Sprintf("UPDATE %s SET user_id = ?", table), defaultUserID,
		); err != nil {
			return fmt.Errorf("backfill user_id in %s: %w", table, err)
		}
		if _, err := s.db.Exec(
			"INSERT OR IGNORE INTO users (id, username, password) VALUES (?, ?, ?)",
			defaultUserID, defaultUserName, defaultUserPassword,
		); err != nil {
			return fmt.Errorf("ensure default user: %w", err)
		}

		slog.Info("Added user_id column to legacy table", "table", table)
	}
	return nil
}

func (s *Store) tableExists(table string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query sqlite_master: %w", err)
	}
	return n > 0, nil
}

func (s *Store) hasColumn(table, column string) (bool, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table_info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal any
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, fmt.Errorf("scan column info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
