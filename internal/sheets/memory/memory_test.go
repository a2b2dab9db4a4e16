package memory

import (
	"context"
	"testing"

	"saldo/internal/analytics"
	applog "saldo/internal/log"
)

func TestWriter_ReplacesReport(t *testing.T) {
	w := New(applog.Discard())
	ctx := context.Background()

	r, err := analytics.ComputeYearlyBreakdown(2024, nil, nil)
	if err != nil {
		t.Fatalf("ComputeYearlyBreakdown() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := w.WriteYearlyReport(ctx, "owner-1", r); err != nil {
			t.Fatalf("WriteYearlyReport() error = %v", err)
		}
	}

	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
	rows, ok := w.Report("2024 owner-1")
	if !ok {
		t.Fatal("Report() found nothing for 2024 owner-1")
	}
	if len(rows) != 14 {
		t.Errorf("Report() returned %d rows, want 14", len(rows))
	}
}
