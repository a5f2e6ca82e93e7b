package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/alerts"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// AlertEvaluator runs the daily pass over a user's recurring payments and
// budget. It notifies about payments due tomorrow or today, silently rolls
// the due date of overdue ones forward, and flags a blown monthly budget.
type AlertEvaluator struct {
	store    *storage.Store
	notifier alerts.Notifier
}

func NewAlertEvaluator(store *storage.Store, notifier alerts.Notifier) *AlertEvaluator {
	if notifier == nil {
		notifier = alerts.LogNotifier{}
	}
	return &AlertEvaluator{store: store, notifier: notifier}
}

// Evaluate runs one pass for one user as of today. Per-item trouble is
// logged and the pass keeps going; only listing failures abort it.
func (e *AlertEvaluator) Evaluate(ctx context.Context, userID int64, today core.Date) error {
	if err := e.checkRecurringPayments(ctx, userID, today); err != nil {
		return err
	}
	return e.checkBudget(ctx, userID, today)
}

// EvaluateAll runs one pass for every registered user.
func (e *AlertEvaluator) EvaluateAll(ctx context.Context, today core.Date) error {
	userIDs, err := e.store.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users for alert pass: %w", err)
	}

	for _, userID := range userIDs {
		if err := e.Evaluate(ctx, userID, today); err != nil {
			slog.ErrorContext(ctx, "Alert pass failed for user",
				"user_id", userID, "error", err)
		}
	}
	return nil
}

func (e *AlertEvaluator) checkRecurringPayments(ctx context.Context, userID int64, today core.Date) error {
	payments, err := e.store.ListRecurringPayments(ctx, userID)
	if err != nil {
		return fmt.Errorf("check recurring payments: %w", err)
	}

	for _, p := range payments {
		switch days := today.DaysUntil(p.DueDate); {
		case days == 1:
			e.notify(ctx, paymentNotification(alerts.KindDueTomorrow, p))
		case days == 0:
			e.notify(ctx, paymentNotification(alerts.KindDueToday, p))
		case days < 0:
			// Overdue: advance the due date one period past the missed
			// one. No notification and no auto-pay; the expense is the
			// user's to record.
			next := core.NextDueDate(p.DueDate, p.Frequency)
			if err := e.store.UpdateDueDate(ctx, p.ID, next, userID); err != nil {
				slog.ErrorContext(ctx, "Failed to roll over overdue payment",
					"payment_id", p.ID, "error", err)
				continue
			}
			slog.InfoContext(ctx, "Rolled over overdue payment",
				"payment_id", p.ID,
				"name", p.Name,
				"was_due", p.DueDate.String(),
				"next_due", next.String(),
				"user_id", userID)
		}
	}
	return nil
}

func (e *AlertEvaluator) checkBudget(ctx context.Context, userID int64, today core.Date) error {
	month := today.MonthOf()
	budgetCents, ok, err := e.store.GetBudget(ctx, month, userID)
	if err != nil {
		return fmt.Errorf("check budget: %w", err)
	}
	if !ok {
		return nil
	}

	spentCents, err := e.store.SumExpensesSince(ctx, today.FirstOfMonth(), userID)
	if err != nil {
		return fmt.Errorf("check budget spending: %w", err)
	}

	// Strictly greater: spending equal to the budget does not alert.
	if spentCents > budgetCents {
		e.notify(ctx, alerts.Notification{
			Kind:          alerts.KindBudgetExceeded,
			UserID:        userID,
			Timestamp:     time.Now(),
			Month:         month,
			BudgetCents:   budgetCents,
			SpendingCents: spentCents,
		})
	}
	return nil
}

func (e *AlertEvaluator) notify(ctx context.Context, n alerts.Notification) {
	if err := e.notifier.Notify(ctx, n); err != nil {
		slog.ErrorContext(ctx, "Failed to deliver notification",
			"kind", n.Kind, "user_id", n.UserID, "error", err)
	}
}

func paymentNotification(kind alerts.Kind, p core.RecurringPayment) alerts.Notification {
	return alerts.Notification{
		Kind:        kind,
		UserID:      p.UserID,
		Timestamp:   time.Now(),
		PaymentID:   p.ID,
		PaymentName: p.Name,
		AmountCents: p.Amount.Cents,
		DueDate:     p.DueDate.String(),
	}
}
