package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/core"
)

// CreateRecurringPayment inserts a recurring payment and returns its id.
func (s *Store) CreateRecurringPayment(ctx context.Context, rp core.RecurringPayment) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO recurring_payments (name, amount_cents, due_date, frequency, user_id) VALUES (?, ?, ?, ?, ?)",
		rp.Name, rp.Amount.Cents, rp.DueDate.String(), string(rp.Frequency), rp.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert recurring payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recurring payment last insert id: %w", err)
	}
	return id, nil
}

// ListRecurringPayments returns the user's recurring payments, soonest due
// first.
func (s *Store) ListRecurringPayments(ctx context.Context, userID int64) ([]core.RecurringPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount_cents, due_date, frequency FROM recurring_payments WHERE user_id = ? ORDER BY due_date ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select recurring payments: %w", err)
	}
	defer rows.Close()

	var payments []core.RecurringPayment
	for rows.Next() {
		rp, err := scanRecurringPayment(rows, userID)
		if err != nil {
			return nil, err
		}
		payments = append(payments, rp)
	}
	return payments, rows.Err()
}

// GetRecurringPayment fetches one payment, enforcing ownership.
func (s *Store) GetRecurringPayment(ctx context.Context, id, userID int64) (core.RecurringPayment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, amount_cents, due_date, frequency FROM recurring_payments WHERE id = ? AND user_id = ?",
		id, userID,
	)
	rp, err := scanRecurringPayment(row, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.RecurringPayment{}, core.ErrNotOwned
	}
	return rp, err
}

// UpdateDueDate persists a recomputed due date, enforcing ownership.
func (s *Store) UpdateDueDate(ctx context.Context, id int64, due core.Date, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE recurring_payments SET due_date = ? WHERE id = ? AND user_id = ?",
		due.String(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("update due date: %w", err)
	}
	return requireOwnedRow(res)
}

// DeleteRecurringPayment removes a payment, enforcing ownership.
func (s *Store) DeleteRecurringPayment(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM recurring_payments WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete recurring payment: %w", err)
	}
	return requireOwnedRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecurringPayment(row rowScanner, userID int64) (core.RecurringPayment, error) {
	var (
		rp      core.RecurringPayment
		dueStr  string
		freqStr string
	)
	if err := row.Scan(&rp.ID, &rp.Name, &rp.Amount.Cents, &dueStr, &freqStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.RecurringPayment{}, err
		}
		return core.RecurringPayment{}, fmt.Errorf("scan recurring payment: %w", err)
	}
	due, err := core.ParseDate(dueStr)
	if err != nil {
		return core.RecurringPayment{}, fmt.Errorf("stored payment %d has bad due date %q: %w", rp.ID, dueStr, err)
	}
	rp.DueDate = due
	rp.Frequency = core.Frequency(freqStr)
	rp.UserID = userID
	return rp, nil
}
