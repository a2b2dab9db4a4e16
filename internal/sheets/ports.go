// Package sheets publishes yearly reports to spreadsheets.
package sheets

import (
	"context"

	"saldo/internal/analytics"
)

// ReportWriter stores one owner's yearly breakdown, replacing any earlier copy.
type ReportWriter interface {
	WriteYearlyReport(ctx context.Context, ownerID string, r analytics.YearlyResult) error
}
