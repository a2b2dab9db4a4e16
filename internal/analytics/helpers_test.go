package analytics

import (
	"fmt"

	"saldo/internal/core"
)

func date(y, m, d int) core.Date {
	return core.NewDate(y, m, d)
}

func income(id string, amount float64, d core.Date) core.Transaction {
	return core.Transaction{ID: id, OwnerID: "u1", Kind: core.KindIncome, Label: "Salary", Amount: amount, Date: d}
}

func expense(id string, amount float64, d core.Date) core.Transaction {
	return core.Transaction{ID: id, OwnerID: "u1", Kind: core.KindExpense, Label: "Rent", Amount: amount, Date: d}
}

// series returns n records of kind on consecutive days starting at first.
func series(kind core.Kind, n int, first core.Date) []core.Transaction {
	out := make([]core.Transaction, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, core.Transaction{
			ID:      fmt.Sprintf("%s-%d", kind, i),
			OwnerID: "u1",
			Kind:    kind,
			Label:   "item",
			Amount:  float64(10 * (i + 1)),
			Date:    core.Date{Time: first.AddDate(0, 0, i)},
		})
	}
	return out
}
