// Package core provides amount parsing utilities.
//
// Amounts are plain float64 values in a single implicit currency. Parsing
// goes through decimal arithmetic so that the value handed to the rest of the
// system is the closest double to what the user typed.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmount guards against values that lose integer precision as float64.
var maxAmount = decimal.New(1, 15)

// ParseAmount converts a decimal string to a positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Negative, zero, exponent and malformed inputs are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-1")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") || strings.ContainsAny(s, "eE") {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() || d.GreaterThan(maxAmount) {
		return 0, ErrInvalidAmount
	}
	return d.InexactFloat64(), nil
}
