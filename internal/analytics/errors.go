package analytics

import (
	"errors"
	"fmt"
	"math"

	"saldo/internal/core"
)

// ErrPrecondition is wrapped by every contract violation the engine detects.
// Callers map it to a client error; it never signals a partial result.
var ErrPrecondition = errors.New("analytics precondition violated")

// PreconditionError names the operation and the offending input.
type PreconditionError struct {
	Op    string
	Field string
	Value any
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: invalid %s %v", e.Op, e.Field, e.Value)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

func checkYear(op string, year int) error {
	if year < 1 || year > 9999 {
		return &PreconditionError{Op: op, Field: "year", Value: year}
	}
	return nil
}

func checkMonthIndex(op string, monthIndex int) error {
	if monthIndex < 0 || monthIndex > 11 {
		return &PreconditionError{Op: op, Field: "monthIndex", Value: monthIndex}
	}
	return nil
}

// checkRecords verifies that every record has the expected kind, a date and
// a non-negative amount.
func checkRecords(op string, kind core.Kind, records []core.Transaction) error {
	for i, r := range records {
		if r.Kind != kind {
			return &PreconditionError{Op: op, Field: fmt.Sprintf("%s[%d].kind", kind, i), Value: r.Kind}
		}
		if r.Date.IsZero() {
			return &PreconditionError{Op: op, Field: fmt.Sprintf("%s[%d].date", kind, i), Value: "zero"}
		}
		if r.Amount < 0 || math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
			return &PreconditionError{Op: op, Field: fmt.Sprintf("%s[%d].amount", kind, i), Value: r.Amount}
		}
	}
	return nil
}

func checkBoth(op string, incomes, expenses []core.Transaction) error {
	if err := checkRecords(op, core.KindIncome, incomes); err != nil {
		return err
	}
	return checkRecords(op, core.KindExpense, expenses)
}
