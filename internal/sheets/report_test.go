package sheets

import (
	"testing"

	"saldo/internal/analytics"
)

func TestReportTitle(t *testing.T) {
	tests := []struct {
		year  int
		owner string
		want  string
	}{
		{2024, "3f2a9c1e-0000-4000-8000-000000000000", "2024 3f2a9c1e"},
		{2023, "u1", "2023 u1"},
		{2024, "2023 legacy", "2023 leg"},
	}
	for _, tt := range tests {
		if got := ReportTitle(tt.year, tt.owner); got != tt.want {
			t.Errorf("ReportTitle(%d, %q) = %q, want %q", tt.year, tt.owner, got, tt.want)
		}
	}
}

func TestReportRows(t *testing.T) {
	r, err := analytics.ComputeYearlyBreakdown(2024, nil, nil)
	if err != nil {
		t.Fatalf("ComputeYearlyBreakdown() error = %v", err)
	}

	rows := ReportRows(r)
	if len(rows) != 14 {
		t.Fatalf("ReportRows() returned %d rows, want 14", len(rows))
	}
	if rows[1][0] != "Jan" || rows[12][0] != "Dec" {
		t.Errorf("month column = %v .. %v", rows[1][0], rows[12][0])
	}
	last := rows[13]
	if last[0] != "Total" || last[5] != "Savings rate 0.00%" {
		t.Errorf("totals row = %v", last)
	}
}
