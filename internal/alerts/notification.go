// Package alerts carries notifications from the alert evaluator to whatever
// front end is listening: the process log, or a durable queue a detached UI
// can consume.
package alerts

import (
	"encoding/json"
	"time"
)

type Kind string

const (
	KindDueTomorrow    Kind = "payment_due_tomorrow"
	KindDueToday       Kind = "payment_due_today"
	KindBudgetExceeded Kind = "budget_exceeded"
)

// Notification is one alert for one user. Payment fields are set for the
// due-date kinds, budget fields for KindBudgetExceeded. Amounts are cents.
type Notification struct {
	Kind      Kind      `json:"kind"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`

	PaymentID   int64  `json:"payment_id,omitempty"`
	PaymentName string `json:"payment_name,omitempty"`
	AmountCents int64  `json:"amount_cents,omitempty"`
	DueDate     string `json:"due_date,omitempty"`

	Month         string `json:"month,omitempty"`
	BudgetCents   int64  `json:"budget_cents,omitempty"`
	SpendingCents int64  `json:"spending_cents,omitempty"`
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func NotificationFromJSON(data []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
