package analytics

import (
	"time"

	"saldo/internal/core"
)

// MonthlyEntry is one month of a yearly breakdown.
type MonthlyEntry struct {
	Month            string  `json:"month"` // short name, e.g. "Jan"
	MonthNumber      int     `json:"monthNumber"`
	Income           float64 `json:"income"`
	Expense          float64 `json:"expense"`
	Balance          float64 `json:"balance"`
	TransactionCount int     `json:"transactionCount"`
}

// YearlyResult is returned by ComputeYearlyBreakdown.
type YearlyResult struct {
	Year             int            `json:"year"`
	Summary          Summary        `json:"summary"`
	MonthlyBreakdown []MonthlyEntry `json:"monthlyBreakdown"`
}

// ShortMonth renders "Jan" for monthIndex 0.
func ShortMonth(monthIndex int) string {
	return time.Month(monthIndex + 1).String()[:3]
}

// ComputeYearlyBreakdown produces exactly twelve monthly rows plus year
// totals. Records dated outside the year are ignored.
func ComputeYearlyBreakdown(year int, incomes, expenses []core.Transaction) (YearlyResult, error) {
	const op = "ComputeYearlyBreakdown"
	if err := checkYear(op, year); err != nil {
		return YearlyResult{}, err
	}
	if err := checkBoth(op, incomes, expenses); err != nil {
		return YearlyResult{}, err
	}

	yearStart, _ := MonthBounds(year, 0)
	_, yearEnd := MonthBounds(year, 11)
	incomes = filterRange(incomes, yearStart, yearEnd)
	expenses = filterRange(expenses, yearStart, yearEnd)

	result := YearlyResult{
		Year:             year,
		MonthlyBreakdown: make([]MonthlyEntry, 0, 12),
	}
	for _, b := range MonthBuckets(year) {
		monthIncomes := filterRange(incomes, b.Start, b.End)
		monthExpenses := filterRange(expenses, b.Start, b.End)
		income := sum(monthIncomes)
		expense := sum(monthExpenses)
		result.MonthlyBreakdown = append(result.MonthlyBreakdown, MonthlyEntry{
			Month:            ShortMonth(b.MonthIndex),
			MonthNumber:      b.MonthIndex + 1,
			Income:           income,
			Expense:          expense,
			Balance:          income - expense,
			TransactionCount: len(monthIncomes) + len(monthExpenses),
		})
	}

	totalIncome := sum(incomes)
	totalExpenses := sum(expenses)
	balance := totalIncome - totalExpenses
	result.Summary = Summary{
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		Balance:          balance,
		SavingsRate:      SavingsRate(totalIncome, balance),
		TransactionCount: len(incomes) + len(expenses),
	}
	return result, nil
}
