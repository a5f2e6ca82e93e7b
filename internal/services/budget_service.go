package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type BudgetService struct {
	store *storage.Store
}

func NewBudgetService(store *storage.Store) *BudgetService {
	return &BudgetService{store: store}
}

// Set upserts the budget for (month, user): an existing row is overwritten,
// never duplicated. month is YYYY-MM.
func (s *BudgetService) Set(ctx context.Context, month string, amountCents, userID int64) error {
	normalized, err := core.ParseMonth(month)
	if err != nil {
		return err
	}
	if amountCents <= 0 {
		return core.ErrInvalidAmount
	}

	if err := s.store.UpsertBudget(ctx, normalized, amountCents, userID); err != nil {
		return fmt.Errorf("set budget for %s: %w", normalized, err)
	}

	slog.InfoContext(ctx, "Monthly budget set",
		"month", normalized,
		"amount_cents", amountCents,
		"user_id", userID)
	return nil
}

// Get returns the budget for (month, user). An unset month is
// (Money{}, false, nil), not an error.
func (s *BudgetService) Get(ctx context.Context, month string, userID int64) (core.Money, bool, error) {
	normalized, err := core.ParseMonth(month)
	if err != nil {
		return core.Money{}, false, err
	}

	cents, ok, err := s.store.GetBudget(ctx, normalized, userID)
	if err != nil {
		return core.Money{}, false, fmt.Errorf("get budget for %s: %w", normalized, err)
	}
	return core.Money{Cents: cents}, ok, nil
}
