package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
)

func TestBudgetServiceSetAndGet(t *testing.T) {
	store := openTestStore(t)
	budgets := NewBudgetService(store)
	ctx := context.Background()
	alice := registerTestUser(t, store, "alice")

	t.Run("validation", func(t *testing.T) {
		if err := budgets.Set(ctx, "January", 100, alice); !errors.Is(err, core.ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth, got %v", err)
		}
		if err := budgets.Set(ctx, "2025-01", 0, alice); !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("unset month", func(t *testing.T) {
		_, ok, err := budgets.Get(ctx, "2025-01", alice)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Fatal("expected unset")
		}
	})

	t.Run("upsert overwrites instead of duplicating", func(t *testing.T) {
		if err := budgets.Set(ctx, "2025-01", 50000, alice); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := budgets.Set(ctx, "2025-01", 70000, alice); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		amount, ok, err := budgets.Get(ctx, "2025-01", alice)
		if err != nil || !ok || amount.Cents != 70000 {
			t.Fatalf("expected 70000 cents, got (%d, %v, err=%v)", amount.Cents, ok, err)
		}
	})
}
