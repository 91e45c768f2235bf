package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/famledger/internal/models"
)

var exportHeader = []string{"Date", "Type", "Category", "Description", "Amount", "Source"}

// exportRows flattens transactions for both export formats.
func exportRows(txns []*models.Transaction, categories []*models.Category) [][]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			t.Date.Format(time.DateOnly),
			t.Type,
			names[t.CategoryID],
			t.Description,
			t.Amount.StringFixed(2),
			t.Source,
		})
	}
	return rows
}

// WriteCSV writes transactions as CSV with a header row.
func WriteCSV(w io.Writer, txns []*models.Transaction, categories []*models.Category) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(exportRows(txns, categories)); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

// XLSXSheet is the worksheet name used by WriteXLSX.
const XLSXSheet = "Transactions"

// WriteXLSX writes transactions as a single-sheet workbook. Amounts are
// numeric cells; a signed total closes the sheet.
func WriteXLSX(w io.Writer, txns []*models.Transaction, categories []*models.Category) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rows := exportRows(txns, categories)
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cells[4] = txns[i].Amount.InexactFloat64()
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if len(txns) > 0 {
		total := fmt.Sprintf("SUMPRODUCT((B2:B%[1]d=\"income\")*E2:E%[1]d)-SUMPRODUCT((B2:B%[1]d=\"expense\")*E2:E%[1]d)", len(txns)+1)
		totalRow := len(txns) + 2
		if err := f.SetCellValue(XLSXSheet, fmt.Sprintf("D%d", totalRow), "Net"); err != nil {
			return err
		}
		if err := f.SetCellFormula(XLSXSheet, fmt.Sprintf("E%d", totalRow), total); err != nil {
			return fmt.Errorf("writing total: %w", err)
		}
	}

	f.SetColWidth(XLSXSheet, "A", "B", 12)
	f.SetColWidth(XLSXSheet, "C", "C", 16)
	f.SetColWidth(XLSXSheet, "D", "D", 32)
	f.SetColWidth(XLSXSheet, "E", "F", 12)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
