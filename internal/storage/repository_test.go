package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreateUser(t *testing.T, s *Store, username string) int64 {
	t.Helper()
	id, err := s.CreateUser(context.Background(), username, "pw")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return id
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	// Second open re-runs migrations and the legacy repair against an
	// existing schema; both must be no-ops.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "alice", "p1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("duplicate username", func(t *testing.T) {
		if _, err := s.CreateUser(ctx, "alice", "p2"); !errors.Is(err, core.ErrUsernameTaken) {
			t.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("authenticate match", func(t *testing.T) {
		got, ok, err := s.GetUserByCredentials(ctx, "alice", "p1")
		if err != nil || !ok || got != id {
			t.Fatalf("expected (%d, true), got (%d, %v, err=%v)", id, got, ok, err)
		}
	})

	t.Run("authenticate wrong password is not an error", func(t *testing.T) {
		_, ok, err := s.GetUserByCredentials(ctx, "alice", "wrong")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("expected no match")
		}
	})

	t.Run("list ids", func(t *testing.T) {
		mustCreateUser(t, s, "bob")
		ids, err := s.ListUserIDs(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 users, got %d", len(ids))
		}
	})
}

func TestCategories(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	if _, err := s.CreateCategory(ctx, "Groceries", alice); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("duplicate is per-user", func(t *testing.T) {
		if _, err := s.CreateCategory(ctx, "Groceries", alice); !errors.Is(err, core.ErrCategoryExists) {
			t.Fatalf("expected ErrCategoryExists, got %v", err)
		}
		// Same name under another user is fine
		if _, err := s.CreateCategory(ctx, "Groceries", bob); err != nil {
			t.Fatalf("other user should reuse name: %v", err)
		}
	})

	t.Run("list is alphabetical and scoped", func(t *testing.T) {
		if _, err := s.CreateCategory(ctx, "Bills", alice); err != nil {
			t.Fatalf("create: %v", err)
		}
		names, err := s.ListCategories(ctx, alice)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		want := []string{"Bills", "Groceries"}
		if len(names) != len(want) {
			t.Fatalf("expected %v, got %v", want, names)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, names)
			}
		}
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		if err := s.DeleteCategory(ctx, "NoSuch", alice); err != nil {
			t.Fatalf("expected silent no-op, got %v", err)
		}
	})

	t.Run("delete removes only own row", func(t *testing.T) {
		if err := s.DeleteCategory(ctx, "Groceries", alice); err != nil {
			t.Fatalf("delete: %v", err)
		}
		names, err := s.ListCategories(ctx, bob)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(names) != 1 || names[0] != "Groceries" {
			t.Fatalf("bob's category should survive, got %v", names)
		}
	})
}

func TestExpenses(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	add := func(date core.Date, cents int64, userID int64) int64 {
		t.Helper()
		id, err := s.CreateExpense(ctx, core.Expense{
			Date: date, Category: "Misc", Amount: core.Money{Cents: cents}, UserID: userID,
		})
		if err != nil {
			t.Fatalf("create expense: %v", err)
		}
		return id
	}

	first := add(core.NewDate(2025, 1, 10), 1000, alice)
	add(core.NewDate(2025, 1, 12), 500, alice)
	add(core.NewDate(2025, 1, 12), 250, alice)
	add(core.NewDate(2025, 1, 11), 9999, bob)

	t.Run("list newest first and scoped", func(t *testing.T) {
		got, err := s.ListExpenses(ctx, alice)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 expenses, got %d", len(got))
		}
		if got[0].Date.String() != "2025-01-12" || got[2].Date.String() != "2025-01-10" {
			t.Fatalf("wrong order: %v", got)
		}
		for _, e := range got {
			if e.Amount.Cents == 9999 {
				t.Fatal("bob's expense leaked into alice's list")
			}
		}
	})

	t.Run("sum since", func(t *testing.T) {
		cases := []struct {
			since core.Date
			want  int64
		}{
			{core.NewDate(2025, 1, 1), 1750},
			{core.NewDate(2025, 1, 11), 750},
			{core.NewDate(2025, 1, 13), 0},
		}
		for _, tc := range cases {
			got, err := s.SumExpensesSince(ctx, tc.since, alice)
			if err != nil {
				t.Fatalf("sum since %s: %v", tc.since, err)
			}
			if got != tc.want {
				t.Errorf("sum since %s = %d, want %d", tc.since, got, tc.want)
			}
		}
	})

	t.Run("daily totals ascending", func(t *testing.T) {
		totals, err := s.DailyTotals(ctx, alice)
		if err != nil {
			t.Fatalf("daily totals: %v", err)
		}
		if len(totals) != 2 {
			t.Fatalf("expected 2 days, got %d", len(totals))
		}
		if totals[0].Date.String() != "2025-01-10" || totals[0].Total.Cents != 1000 {
			t.Fatalf("wrong first point: %+v", totals[0])
		}
		if totals[1].Date.String() != "2025-01-12" || totals[1].Total.Cents != 750 {
			t.Fatalf("wrong second point: %+v", totals[1])
		}
	})

	t.Run("cross-user update fails", func(t *testing.T) {
		err := s.UpdateExpense(ctx, first, core.Expense{
			Date: core.NewDate(2025, 2, 1), Category: "Hijack", Amount: core.Money{Cents: 1}, UserID: bob,
		})
		if !errors.Is(err, core.ErrNotOwned) {
			t.Fatalf("expected ErrNotOwned, got %v", err)
		}
	})

	t.Run("cross-user delete fails", func(t *testing.T) {
		if err := s.DeleteExpense(ctx, first, bob); !errors.Is(err, core.ErrNotOwned) {
			t.Fatalf("expected ErrNotOwned, got %v", err)
		}
	})

	t.Run("owner update and delete", func(t *testing.T) {
		err := s.UpdateExpense(ctx, first, core.Expense{
			Date: core.NewDate(2025, 1, 20), Category: "Moved", Amount: core.Money{Cents: 1100}, UserID: alice,
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if err := s.DeleteExpense(ctx, first, alice); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := s.DeleteExpense(ctx, first, alice); !errors.Is(err, core.ErrNotOwned) {
			t.Fatalf("second delete should fail, got %v", err)
		}
	})
}

func TestRecurringPayments(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	id, err := s.CreateRecurringPayment(ctx, core.RecurringPayment{
		Name: "Rent", Amount: core.Money{Cents: 90000},
		DueDate: core.NewDate(2025, 2, 1), Frequency: core.Monthly, UserID: alice,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = s.CreateRecurringPayment(ctx, core.RecurringPayment{
		Name: "Gym", Amount: core.Money{Cents: 3000},
		DueDate: core.NewDate(2025, 1, 15), Frequency: core.Weekly, UserID: alice,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("list ascending by due date", func(t *testing.T) {
		got, err := s.ListRecurringPayments(ctx, alice)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0].Name != "Gym" || got[1].Name != "Rent" {
			t.Fatalf("wrong order: %+v", got)
		}
	})

	t.Run("get enforces ownership", func(t *testing.T) {
		if _, err := s.GetRecurringPayment(ctx, id, bob); !errors.Is(err, core.ErrNotOwned) {
			t.Fatalf("expected ErrNotOwned, got %v", err)
		}
		rp, err := s.GetRecurringPayment(ctx, id, alice)
		if err != nil || rp.Name != "Rent" || rp.Frequency != core.Monthly {
			t.Fatalf("get: %+v err=%v", rp, err)
		}
	})

	t.Run("due date update", func(t *testing.T) {
		if err := s.UpdateDueDate(ctx, id, core.NewDate(2025, 3, 1), bob); !errors.Is(err, core.ErrNotOwned) {
			t.Fatalf("expected ErrNotOwned, got %v", err)
		}
		if err := s.UpdateDueDate(ctx, id, core.NewDate(2025, 3, 1), alice); err != nil {
			t.Fatalf("update: %v", err)
		}
		rp, err := s.GetRecurringPayment(ctx, id, alice)
		if err != nil || rp.DueDate.String() != "2025-03-01" {
			t.Fatalf("due date not persisted: %+v err=%v", rp, err)
		}
	})

	t.Run("delete enforces ownership", func(t *testing.T) {
		if err := s.DeleteRecurringPayment(ctx, id, bob); !errors.Is(err, core.ErrNotOwned) {
			t.Fatalf("expected ErrNotOwned, got %v", err)
		}
		if err := s.DeleteRecurringPayment(ctx, id, alice); err != nil {
			t.Fatalf("delete: %v", err)
		}
	})
}

func TestBudgets(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "alice")
	bob := mustCreateUser(t, s, "bob")

	t.Run("unset month is not an error", func(t *testing.T) {
		_, ok, err := s.GetBudget(ctx, "2025-01", alice)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Fatal("expected unset")
		}
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		if err := s.UpsertBudget(ctx, "2025-01", 50000, alice); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := s.UpsertBudget(ctx, "2025-01", 70000, alice); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		cents, ok, err := s.GetBudget(ctx, "2025-01", alice)
		if err != nil || !ok || cents != 70000 {
			t.Fatalf("expected 70000, got (%d, %v, err=%v)", cents, ok, err)
		}
	})

	t.Run("scoped per user", func(t *testing.T) {
		_, ok, err := s.GetBudget(ctx, "2025-01", bob)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Fatal("alice's budget leaked to bob")
		}
	})
}
