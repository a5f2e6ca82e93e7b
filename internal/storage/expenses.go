package storage

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// CreateExpense inserts an expense row and returns its id.
func (s *Store) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (date, category, amount_cents, user_id) VALUES (?, ?, ?, ?)",
		e.Date.String(), e.Category, e.Amount.Cents, e.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense last insert id: %w", err)
	}
	return id, nil
}

// ListExpenses returns all of the user's expenses, most recent date first.
func (s *Store) ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, category, amount_cents FROM expenses WHERE user_id = ? ORDER BY date DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			dateStr string
		)
		if err := rows.Scan(&e.ID, &dateStr, &e.Category, &e.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date, err = core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored expense %d has bad date %q: %w", e.ID, dateStr, err)
		}
		e.UserID = userID
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SumExpensesSince returns the total cents of the user's expenses with
// date >= start. Zero when nothing matches.
func (s *Store) SumExpensesSince(ctx context.Context, start core.Date, userID int64) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE date >= ? AND user_id = ?",
		start.String(), userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum expenses since %s: %w", start, err)
	}
	return total, nil
}

// DailyTotals returns (date, total) pairs grouped by date, ascending. This
// is the series behind the spending chart.
func (s *Store) DailyTotals(ctx context.Context, userID int64) ([]core.DailyTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, SUM(amount_cents) FROM expenses WHERE user_id = ? GROUP BY date ORDER BY date ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select daily totals: %w", err)
	}
	defer rows.Close()

	var totals []core.DailyTotal
	for rows.Next() {
		var (
			dateStr string
			cents   int64
		)
		if err := rows.Scan(&dateStr, &cents); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		d, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored total has bad date %q: %w", dateStr, err)
		}
		totals = append(totals, core.DailyTotal{Date: d, Total: core.Money{Cents: cents}})
	}
	return totals, rows.Err()
}

// UpdateExpense overwrites date, category and amount of the expense with the
// given id, provided it belongs to the user. core.ErrNotOwned otherwise.
func (s *Store) UpdateExpense(ctx context.Context, id int64, e core.Expense) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET date = ?, category = ?, amount_cents = ? WHERE id = ? AND user_id = ?",
		e.Date.String(), e.Category, e.Amount.Cents, id, e.UserID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireOwnedRow(res)
}

// DeleteExpense removes the expense with the given id, provided it belongs
// to the user. core.ErrNotOwned otherwise.
func (s *Store) DeleteExpense(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireOwnedRow(res)
}
