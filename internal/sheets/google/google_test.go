package google

import (
	"context"
	"testing"

	gsheet "google.golang.org/api/sheets/v4"

	applog "saldo/internal/log"
)

func TestQuoteSheet(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024 abc", "'2024 abc'"},
		{"O'Brien", "'O''Brien'"},
	}
	for _, tt := range tests {
		if got := quoteSheet(tt.in); got != tt.want {
			t.Errorf("quoteSheet(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHasSheet(t *testing.T) {
	ss := &gsheet.Spreadsheet{Sheets: []*gsheet.Sheet{
		{Properties: &gsheet.SheetProperties{Title: "2024 abc"}},
		{Properties: nil},
	}}

	if !hasSheet(ss, "2024 ABC") {
		t.Error("hasSheet() = false for an existing title")
	}
	if hasSheet(ss, "2023 abc") {
		t.Error("hasSheet() = true for a missing title")
	}
	if hasSheet(nil, "x") {
		t.Error("hasSheet(nil) = true")
	}
}

func TestNewRequiresConfiguration(t *testing.T) {
	ctx := context.Background()
	if _, err := New(ctx, Config{}, applog.Discard()); err == nil {
		t.Error("New() without spreadsheet id error = nil")
	}
	if _, err := New(ctx, Config{SpreadsheetID: "id"}, applog.Discard()); err == nil {
		t.Error("New() without credentials error = nil")
	}
	if _, err := New(ctx, Config{SpreadsheetID: "id", CredentialsFile: "/does/not/exist.json"}, applog.Discard()); err == nil {
		t.Error("New() with missing credentials file error = nil")
	}
}
