// Package export renders transaction lists as .xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"saldo/internal/core"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var columnWidths = []float64{8, 20, 15, 15, 8, 20}

// SheetName is the worksheet title for kind, e.g. "Income Report".
func SheetName(kind core.Kind) string {
	k := kind.String()
	return strings.ToUpper(k[:1]) + k[1:] + " Report"
}

// Filename returns e.g. income_report_2024-03-01.xlsx for the UTC day of now.
func Filename(kind core.Kind, now time.Time) string {
	return fmt.Sprintf("%s_report_%s.xlsx", kind, now.UTC().Format(time.DateOnly))
}

// Header returns the column titles; the label column is Source or Title.
func Header(kind core.Kind) []any {
	label := kind.LabelField()
	return []any{"S.No", strings.ToUpper(label[:1]) + label[1:], "Amount", "Date", "Icon", "Created At"}
}

// Rows lays records out in the given order followed by a TOTAL row.
func Rows(kind core.Kind, records []core.Transaction) [][]any {
	rows := make([][]any, 0, len(records)+2)
	rows = append(rows, Header(kind))

	var total float64
	for i, r := range records {
		created := ""
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.UTC().Format("Jan 2, 2006, 03:04 PM")
		}
		rows = append(rows, []any{i + 1, r.Label, r.Amount, r.Date.Format("Jan 2, 2006"), r.IconOrDefault(), created})
		total += r.Amount
	}
	rows = append(rows, []any{"", "TOTAL", total, "", "", fmt.Sprintf("Total Records: %d", len(records))})
	return rows
}

// TransactionsWorkbook builds the workbook for records of one kind.
func TransactionsWorkbook(kind core.Kind, records []core.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(kind)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, row := range Rows(kind, records) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set width of %s: %w", col, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
