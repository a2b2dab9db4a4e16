package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"saldo/internal/analytics"
)

// ReportHeader is the first row of every yearly report.
var ReportHeader = []any{"Month", "Income", "Expense", "Balance", "Transactions"}

// ReportTitle names the tab holding ownerID's report for year. Owner ids are
// shortened to keep titles readable; the year prefix keeps tabs sorted.
func ReportTitle(year int, ownerID string) string {
	short := ownerID
	if len(short) > 8 {
		short = short[:8]
	}
	return yearPrefixedName(short, year)
}

// ReportRows lays a yearly breakdown out as a header, twelve month rows and
// a totals row with the savings rate.
func ReportRows(r analytics.YearlyResult) [][]any {
	rows := make([][]any, 0, len(r.MonthlyBreakdown)+2)
	rows = append(rows, ReportHeader)
	for _, m := range r.MonthlyBreakdown {
		rows = append(rows, []any{m.Month, m.Income, m.Expense, m.Balance, m.TransactionCount})
	}
	rows = append(rows, []any{
		"Total",
		r.Summary.TotalIncome,
		r.Summary.TotalExpenses,
		r.Summary.Balance,
		r.Summary.TransactionCount,
		fmt.Sprintf("Savings rate %s%%", strconv.FormatFloat(r.Summary.SavingsRate, 'f', 2, 64)),
	})
	return rows
}

// yearPrefixedName returns "<year> <base>" unless base already starts with a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return strings.TrimSpace(fmt.Sprintf("%d %s", year, base))
}
