package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type RecurringService struct {
	store *storage.Store
}

func NewRecurringService(store *storage.Store) *RecurringService {
	return &RecurringService{store: store}
}

// Add creates a recurring payment. The frequency string is normalized and
// must be weekly, monthly or yearly.
func (s *RecurringService) Add(ctx context.Context, name string, amountCents int64, dueDate core.Date, frequency string, userID int64) (int64, error) {
	freq, err := core.ParseFrequency(frequency)
	if err != nil {
		return 0, err
	}

	rp := core.RecurringPayment{
		Name:      name,
		Amount:    core.Money{Cents: amountCents},
		DueDate:   dueDate,
		Frequency: freq,
		UserID:    userID,
	}
	if err := rp.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.CreateRecurringPayment(ctx, rp)
	if err != nil {
		return 0, fmt.Errorf("add recurring payment: %w", err)
	}

	slog.InfoContext(ctx, "Recurring payment added",
		"id", id,
		"name", rp.Name,
		"due_date", rp.DueDate.String(),
		"frequency", rp.Frequency,
		"user_id", userID)
	return id, nil
}

// List returns the user's recurring payments, soonest due first.
func (s *RecurringService) List(ctx context.Context, userID int64) ([]core.RecurringPayment, error) {
	payments, err := s.store.ListRecurringPayments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recurring payments: %w", err)
	}
	return payments, nil
}

// Delete removes a payment the user owns. core.ErrNotOwned otherwise.
func (s *RecurringService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.store.DeleteRecurringPayment(ctx, id, userID); err != nil {
		return fmt.Errorf("delete recurring payment %d: %w", id, err)
	}
	return nil
}

// MarkPaid records that the payment was made on paymentDate and advances the
// due date one period past it using the rollover rule.
func (s *RecurringService) MarkPaid(ctx context.Context, id int64, paymentDate core.Date, userID int64) error {
	if err := paymentDate.Validate(); err != nil {
		return err
	}

	rp, err := s.store.GetRecurringPayment(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("mark paid %d: %w", id, err)
	}

	next := core.NextDueDate(paymentDate, rp.Frequency)
	if err := s.store.UpdateDueDate(ctx, id, next, userID); err != nil {
		return fmt.Errorf("mark paid %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Recurring payment marked paid",
		"id", id,
		"name", rp.Name,
		"paid_on", paymentDate.String(),
		"next_due", next.String(),
		"user_id", userID)
	return nil
}
