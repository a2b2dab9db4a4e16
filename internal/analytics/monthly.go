package analytics

import (
	"fmt"
	"time"

	"saldo/internal/core"
)

// DailyEntry is one calendar day of a monthly breakdown.
type DailyEntry struct {
	Day     int     `json:"day"`
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// WeeklyEntry is one fixed week bucket of a monthly breakdown.
type WeeklyEntry struct {
	Week      int     `json:"week"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	Balance   float64 `json:"balance"`
}

// MonthSummary totals a month.
type MonthSummary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	TransactionCount int     `json:"transactionCount"`
}

// MonthlyResult is returned by ComputeMonthlyBreakdown.
type MonthlyResult struct {
	Year       int           `json:"year"`
	MonthIndex int           `json:"monthIndex"`
	Month      string        `json:"month"`
	DailyData  []DailyEntry  `json:"dailyData"`
	WeeklyData []WeeklyEntry `json:"weeklyData"`
	Summary    MonthSummary  `json:"summary"`
}

// MonthLabel renders "January 2024" for (2024, 0).
func MonthLabel(year, monthIndex int) string {
	return fmt.Sprintf("%s %d", time.Month(monthIndex+1), year)
}

// ComputeMonthlyBreakdown produces one row per day and one row per fixed week
// of the month. Records dated outside the month are ignored.
func ComputeMonthlyBreakdown(year, monthIndex int, incomes, expenses []core.Transaction) (MonthlyResult, error) {
	const op = "ComputeMonthlyBreakdown"
	if err := checkYear(op, year); err != nil {
		return MonthlyResult{}, err
	}
	if err := checkMonthIndex(op, monthIndex); err != nil {
		return MonthlyResult{}, err
	}
	if err := checkBoth(op, incomes, expenses); err != nil {
		return MonthlyResult{}, err
	}

	monthStart, monthEnd := MonthBounds(year, monthIndex)
	incomes = filterRange(incomes, monthStart, monthEnd)
	expenses = filterRange(expenses, monthStart, monthEnd)

	days := DaysInMonth(year, monthIndex)
	result := MonthlyResult{
		Year:       year,
		MonthIndex: monthIndex,
		Month:      MonthLabel(year, monthIndex),
		DailyData:  make([]DailyEntry, 0, days),
	}

	for day := 1; day <= days; day++ {
		start, end := DayBounds(year, monthIndex, day)
		income := sum(filterRange(incomes, start, end))
		expense := sum(filterRange(expenses, start, end))
		result.DailyData = append(result.DailyData, DailyEntry{
			Day:     day,
			Date:    core.DateOf(start).String(),
			Income:  income,
			Expense: expense,
			Balance: income - expense,
		})
	}

	weeks := WeekBuckets(days)
	result.WeeklyData = make([]WeeklyEntry, 0, len(weeks))
	for _, w := range weeks {
		start, _ := DayBounds(year, monthIndex, w.StartDay)
		_, end := DayBounds(year, monthIndex, w.EndDay)
		income := sum(filterRange(incomes, start, end))
		expense := sum(filterRange(expenses, start, end))
		result.WeeklyData = append(result.WeeklyData, WeeklyEntry{
			Week:      w.Index,
			StartDate: core.DateOf(start).String(),
			EndDate:   core.DateOf(end).String(),
			Income:    income,
			Expense:   expense,
			Balance:   income - expense,
		})
	}

	result.Summary = MonthSummary{
		TotalIncome:      sum(incomes),
		TotalExpenses:    sum(expenses),
		TransactionCount: len(incomes) + len(expenses),
	}
	return result, nil
}
