package alerts

import (
	"context"
	"fmt"
	"log/slog"
)

// Notifier delivers one notification. Implementations must be non-blocking
// in spirit: a failed delivery is reported, never fatal to the evaluation
// pass that produced it.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the structured log. It is the default
// sink when no queue is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n Notification) error {
	switch n.Kind {
	case KindBudgetExceeded:
		slog.WarnContext(ctx, "Budget exceeded",
			"user_id", n.UserID,
			"month", n.Month,
			"budget_cents", n.BudgetCents,
			"spending_cents", n.SpendingCents)
	default:
		slog.WarnContext(ctx, "Payment due",
			"kind", n.Kind,
			"user_id", n.UserID,
			"payment", n.PaymentName,
			"amount_cents", n.AmountCents,
			"due_date", n.DueDate)
	}
	return nil
}

// MultiNotifier fans one notification out to several sinks. Delivery errors
// are collected so one failing sink does not silence the others.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify: %v", errs)
	}
	return nil
}
