// Package analytics turns owner-scoped income and expense sets into summaries
// and calendar breakdowns.
//
// Every exported Compute function is pure: it reads its arguments, allocates a
// fresh result and keeps no state between calls, so it is safe for concurrent
// use. Defaults such as "the current month" are resolved by callers through a
// Clock before the engine runs.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"saldo/internal/core"
)

const (
	// recentPerKind is applied to each kind before the two sides are merged.
	recentPerKind = 5
	recentLimit   = 10
)

// Summary holds all-time totals for one owner.
type Summary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	Balance          float64 `json:"balance"`
	SavingsRate      float64 `json:"savingsRate"`
	TransactionCount int     `json:"transactionCount"`
}

// RecentTransaction is an entry of the recent feed.
type RecentTransaction struct {
	ID        string    `json:"id"`
	Type      core.Kind `json:"type"`
	Label     string    `json:"label"`
	Icon      string    `json:"icon"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	CreatedAt string    `json:"createdAt,omitempty"`

	date core.Date
}

// SummaryResult is returned by ComputeSummary.
type SummaryResult struct {
	Summary            Summary             `json:"summary"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
}

// SavingsRate returns balance as a percentage of totalIncome rounded half-up
// to two decimals, or 0 when there is no income.
func SavingsRate(totalIncome, balance float64) float64 {
	if totalIncome == 0 {
		return 0
	}
	return round2(balance / totalIncome * 100)
}

// round2 rounds the shortest decimal form of x half away from zero, so a
// rate printed as 1.005 becomes 1.01 even though its binary value is below.
func round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// ComputeSummary aggregates the full income and expense history of an owner.
func ComputeSummary(incomes, expenses []core.Transaction) (SummaryResult, error) {
	if err := checkBoth("ComputeSummary", incomes, expenses); err != nil {
		return SummaryResult{}, err
	}

	totalIncome := sum(incomes)
	totalExpenses := sum(expenses)
	balance := totalIncome - totalExpenses

	return SummaryResult{
		Summary: Summary{
			TotalIncome:      totalIncome,
			TotalExpenses:    totalExpenses,
			Balance:          balance,
			SavingsRate:      SavingsRate(totalIncome, balance),
			TransactionCount: len(incomes) + len(expenses),
		},
		RecentTransactions: recentFeed(incomes, expenses),
	}, nil
}

// recentFeed takes the five latest records of each kind, merges them and keeps
// the ten latest. The per-kind cut happens first, so a burst of recent
// incomes cannot push expenses out of the feed and vice versa.
func recentFeed(incomes, expenses []core.Transaction) []RecentTransaction {
	merged := append(latest(incomes, recentPerKind), latest(expenses, recentPerKind)...)
	sortByDateDesc(merged)
	if len(merged) > recentLimit {
		merged = merged[:recentLimit]
	}
	return merged
}

func latest(records []core.Transaction, n int) []RecentTransaction {
	out := make([]RecentTransaction, 0, len(records))
	for _, r := range records {
		out = append(out, toRecent(r))
	}
	sortByDateDesc(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// sortByDateDesc orders newest first; equal dates keep their input order.
func sortByDateDesc(items []RecentTransaction) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].date.After(items[j].date.Time)
	})
}

func toRecent(r core.Transaction) RecentTransaction {
	rt := RecentTransaction{
		ID:     r.ID,
		Type:   r.Kind,
		Label:  r.Label,
		Icon:   r.IconOrDefault(),
		Amount: r.Amount,
		Date:   core.DateOf(r.Date.Time).String(),
		date:   core.DateOf(r.Date.Time),
	}
	if !r.CreatedAt.IsZero() {
		rt.CreatedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return rt
}
