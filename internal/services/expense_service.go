package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type ExpenseService struct {
	store *storage.Store
}

func NewExpenseService(store *storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Add records an expense and returns its id.
func (s *ExpenseService) Add(ctx context.Context, date core.Date, category string, amountCents, userID int64) (int64, error) {
	e := core.Expense{
		Date:     date,
		Category: category,
		Amount:   core.Money{Cents: amountCents},
		UserID:   userID,
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("add expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense recorded",
		"id", id,
		"date", e.Date.String(),
		"category", e.Category,
		"amount_cents", e.Amount.Cents,
		"user_id", userID)
	return id, nil
}

// List returns the user's expenses, most recent date first.
func (s *ExpenseService) List(ctx context.Context, userID int64) ([]core.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// SpendingSince totals the user's spending on or after start. Zero when
// nothing matches.
func (s *ExpenseService) SpendingSince(ctx context.Context, start core.Date, userID int64) (core.Money, error) {
	cents, err := s.store.SumExpensesSince(ctx, start, userID)
	if err != nil {
		return core.Money{}, fmt.Errorf("spending since %s: %w", start, err)
	}
	return core.Money{Cents: cents}, nil
}

// DailyTotals returns the per-day spending series, oldest day first.
func (s *ExpenseService) DailyTotals(ctx context.Context, userID int64) ([]core.DailyTotal, error) {
	totals, err := s.store.DailyTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	return totals, nil
}

// Update overwrites date, category and amount of an expense the user owns.
// core.ErrNotOwned when the id does not exist under this user.
func (s *ExpenseService) Update(ctx context.Context, id int64, date core.Date, category string, amountCents, userID int64) error {
	e := core.Expense{
		Date:     date,
		Category: category,
		Amount:   core.Money{Cents: amountCents},
		UserID:   userID,
	}
	if err := e.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateExpense(ctx, id, e); err != nil {
		return fmt.Errorf("update expense %d: %w", id, err)
	}
	return nil
}

// Delete removes an expense the user owns. core.ErrNotOwned otherwise.
func (s *ExpenseService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.store.DeleteExpense(ctx, id, userID); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}

// ExportCSV writes the user's expense list to w with the header
// ID,Date,Category,Amount, in the same order as List. Amounts are plain
// decimals.
func (s *ExpenseService) ExportCSV(ctx context.Context, w io.Writer, userID int64) error {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return fmt.Errorf("export expenses: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Date", "Category", "Amount"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			e.Category,
			e.Amount.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportToFile writes the CSV export to path, creating parent directories.
func (s *ExpenseService) ExportToFile(ctx context.Context, path string, userID int64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := s.ExportCSV(ctx, f, userID); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Expenses exported", "path", path, "user_id", userID)
	return nil
}
