package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UpsertBudget sets the budget for (month, user), overwriting any existing
// amount. Check-then-write like the rest of the store; the unique index on
// (month, user_id) backstops it.
func (s *Store) UpsertBudget(ctx context.Context, month string, amountCents, userID int64) error {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM budgets WHERE month = ? AND user_id = ?",
		month, userID,
	).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO budgets (month, amount_cents, user_id) VALUES (?, ?, ?)",
			month, amountCents, userID,
		); err != nil {
			return fmt.Errorf("insert budget: %w", err)
		}
	case err != nil:
		return fmt.Errorf("select budget: %w", err)
	default:
		if _, err := s.db.ExecContext(ctx,
			"UPDATE budgets SET amount_cents = ? WHERE id = ?",
			amountCents, id,
		); err != nil {
			return fmt.Errorf("update budget: %w", err)
		}
	}
	return nil
}

// GetBudget returns the budget cents for (month, user). An unset month is
// (0, false, nil), not an error.
func (s *Store) GetBudget(ctx context.Context, month string, userID int64) (int64, bool, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx,
		"SELECT amount_cents FROM budgets WHERE month = ? AND user_id = ?",
		month, userID,
	).Scan(&cents)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("select budget: %w", err)
	}
	return cents, true, nil
}
