package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type (
	// Money is a signed amount in cents. Positive values are deposits,
	// negative values are withdrawals.
	Money struct {
		Cents int64
	}

	// Transaction is a single ledger entry. The sign of Amount encodes the
	// direction; displayed values always use the absolute magnitude with the
	// type tag carrying the direction.
	Transaction struct {
		Date     time.Time
		Title    string
		Category string
		Amount   Money
		Account  string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrZeroAmount    = errors.New("amount cannot be zero")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

// Type returns "income" for non-negative amounts and "expense" otherwise.
func (t Transaction) Type() string {
	if t.Amount.Cents >= 0 {
		return TypeIncome
	}
	return TypeExpense
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Cents == 0 {
		return ErrZeroAmount
	}
	return nil
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// TitleCase normalizes a category the way the ledger stores it: each word
// capitalized, the rest lowered ("dining out" -> "Dining Out").
func TitleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
