package core

import (
	"errors"
	"strings"
)

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	// Frequency is how often a recurring payment comes due.
	Frequency string

	// User is an account holder. Passwords are stored and compared as
	// opaque plain text for compatibility with the legacy database; this
	// is a known security deficiency, not a feature.
	User struct {
		ID       int64
		Username string
		Password string
	}

	Category struct {
		ID     int64
		Name   string
		UserID int64
	}

	Expense struct {
		ID       int64
		Date     Date
		Category string
		Amount   Money
		UserID   int64
	}

	RecurringPayment struct {
		ID        int64
		Name      string
		Amount    Money
		DueDate   Date
		Frequency Frequency
		UserID    int64
	}

	// Budget is the spending limit for one (month, user) pair.
	Budget struct {
		ID     int64
		Month  string // YYYY-MM
		Amount Money
		UserID int64
	}

	// DailyTotal is one point of the spending-over-time series.
	DailyTotal struct {
		Date  Date
		Total Money
	}

	Money struct {
		Cents int64
	}
)

var (
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyUsername    = errors.New("empty username")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrUnknownFrequency = errors.New("unknown frequency")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrCategoryExists   = errors.New("category already exists")
	ErrNotOwned         = errors.New("not found or not owned by user")
)

// ParseFrequency normalizes user input ("Weekly", "MONTHLY", ...) to a known
// Frequency. Unknown values are rejected here; the rollover rule itself is
// more forgiving so that rows written by older tools still advance.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	case Yearly:
		return Yearly, nil
	default:
		return "", ErrUnknownFrequency
	}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyName
	}
	return e.Amount.Validate()
}

func (rp RecurringPayment) Validate() error {
	if strings.TrimSpace(rp.Name) == "" {
		return ErrEmptyName
	}
	if err := rp.Amount.Validate(); err != nil {
		return err
	}
	if err := rp.DueDate.Validate(); err != nil {
		return err
	}
	switch rp.Frequency {
	case Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrUnknownFrequency
	}
}
