package storage

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// CreateCategory inserts a category for the user. A per-user name collision
// maps to core.ErrCategoryExists.
func (s *Store) CreateCategory(ctx context.Context, name string, userID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name, user_id) VALUES (?, ?)",
		name, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, core.ErrCategoryExists
		}
		return 0, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category last insert id: %w", err)
	}
	return id, nil
}

// ListCategories returns the user's category names in alphabetical order.
func (s *Store) ListCategories(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM categories WHERE user_id = ? ORDER BY name ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteCategory removes the named category scoped to the user. Deleting a
// name that does not exist is a silent no-op.
func (s *Store) DeleteCategory(ctx context.Context, name string, userID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM categories WHERE name = ? AND user_id = ?",
		name, userID,
	); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
