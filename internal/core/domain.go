package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

const maxLabelLength = 200

type (
	// Kind tags a transaction as income or expense.
	Kind string

	// Date is a calendar day. The wrapped time is always midnight UTC.
	Date struct {
		time.Time
	}

	// Transaction is the shape shared by incomes and expenses.
	Transaction struct {
		ID        string
		OwnerID   string
		Kind      Kind
		Label     string // source for incomes, title for expenses
		Icon      string
		Amount    float64
		Date      Date
		CreatedAt time.Time
	}
)

var (
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyLabel    = errors.New("empty label")
	ErrLabelTooLong  = fmt.Errorf("label too long (max %d characters)", maxLabelLength)
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyOwner    = errors.New("empty owner")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("access denied")
)

// Kinds returns every transaction kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindIncome, KindExpense}
}

// ParseKind maps a string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	return string(k)
}

// DefaultIcon is used when a transaction is stored without an icon.
func (k Kind) DefaultIcon() string {
	if k == KindIncome {
		return "💰"
	}
	return "💸"
}

// LabelField is the external name of the label for this kind.
func (k Kind) LabelField() string {
	if k == KindIncome {
		return "source"
	}
	return "title"
}

// NewDate creates a Date from year, month (1-12) and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day of t, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. An RFC 3339 timestamp is also
// accepted and reduced to its calendar day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	return nil
}

// IconOrDefault returns the icon, falling back to the kind placeholder.
func (t Transaction) IconOrDefault() string {
	if strings.TrimSpace(t.Icon) == "" {
		return t.Kind.DefaultIcon()
	}
	return t.Icon
}

// Validate checks a transaction before it reaches the store.
func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.OwnerID) == "" {
		return ErrEmptyOwner
	}
	label := strings.TrimSpace(t.Label)
	if label == "" {
		return ErrEmptyLabel
	}
	if len(label) > maxLabelLength {
		return ErrLabelTooLong
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	return t.Date.Validate()
}
