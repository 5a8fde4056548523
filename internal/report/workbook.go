// Package report renders a run's totals and ledger into a workbook.
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"hotzaot/internal/core"
)

const (
	SummarySheet = "Summary"
	DetailSheet  = "Detailed Breakdown"

	// amountNumFmt renders whole amounts with a thousands separator,
	// matching the workbooks this tool replaces.
	amountNumFmt = "#,##0"
)

// WriteWorkbook writes the summary sheet (Category, Total Amount) and the
// detail sheet (Category, Date, Expense Name, Amount) to path as one
// whole-file write. Amounts are rounded to whole units for display; the
// exact values live only in the run itself.
func WriteWorkbook(path string, totals map[string]decimal.Decimal, ledger []core.LedgerEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("name summary sheet: %w", err)
	}
	if _, err := f.NewSheet(DetailSheet); err != nil {
		return fmt.Errorf("create detail sheet: %w", err)
	}

	if err := writeSummary(f, totals); err != nil {
		return err
	}
	if err := writeDetail(f, ledger); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// SortedTotals flattens a totals map into category-ascending order.
func SortedTotals(totals map[string]decimal.Decimal) []core.CategoryTotal {
	out := make([]core.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, core.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func writeSummary(f *excelize.File, totals map[string]decimal.Decimal) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &[]any{"Category", "Total Amount"}); err != nil {
		return fmt.Errorf("summary header: %w", err)
	}
	rows := SortedTotals(totals)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Category, row.Total.Round(0).IntPart()}
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return fmt.Errorf("summary row %d: %w", i+2, err)
		}
	}
	return amountStyle(f, SummarySheet, 2, len(rows))
}

func writeDetail(f *excelize.File, ledger []core.LedgerEntry) error {
	entries := append([]core.LedgerEntry(nil), ledger...)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Name < entries[j].Name
	})

	header := []any{"Category", "Date", "Expense Name", "Amount"}
	if err := f.SetSheetRow(DetailSheet, "A1", &header); err != nil {
		return fmt.Errorf("detail header: %w", err)
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{e.Category, e.Date, e.Name, e.Amount.Round(0).IntPart()}
		if err := f.SetSheetRow(DetailSheet, cell, &values); err != nil {
			return fmt.Errorf("detail row %d: %w", i+2, err)
		}
	}
	return amountStyle(f, DetailSheet, 4, len(entries))
}

// amountStyle applies the thousands-separator format to the amount column
// of a sheet, data rows only.
func amountStyle(f *excelize.File, sheet string, col, rows int) error {
	if rows == 0 {
		return nil
	}
	numFmt := amountNumFmt
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("amount style: %w", err)
	}
	top, err := excelize.CoordinatesToCellName(col, 2)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col, rows+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
		return fmt.Errorf("apply amount style: %w", err)
	}
	return nil
}
