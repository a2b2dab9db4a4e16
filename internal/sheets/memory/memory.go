// Package memory keeps yearly reports in process when no spreadsheet is configured.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"saldo/internal/analytics"
	applog "saldo/internal/log"
	"saldo/internal/sheets"
)

var _ sheets.ReportWriter = (*Writer)(nil)

type Writer struct {
	mu      sync.Mutex
	reports map[string][][]any
	logger  *applog.Logger
}

func New(logger *applog.Logger) *Writer {
	return &Writer{
		reports: make(map[string][][]any),
		logger:  logger.WithComponent(applog.ComponentSheets),
	}
}

func (w *Writer) WriteYearlyReport(ctx context.Context, ownerID string, r analytics.YearlyResult) error {
	title := sheets.ReportTitle(r.Year, ownerID)
	rows := sheets.ReportRows(r)

	w.mu.Lock()
	w.reports[title] = rows
	w.mu.Unlock()

	w.logger.DebugContext(ctx, "Yearly report stored in memory",
		slog.String("sheet", title),
		slog.Float64("balance", r.Summary.Balance))
	return nil
}

// Report returns the rows last written under title.
func (w *Writer) Report(title string) ([][]any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	rows, ok := w.reports[title]
	return rows, ok
}

// Len returns the number of stored reports.
func (w *Writer) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.reports)
}
