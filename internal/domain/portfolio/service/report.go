package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TableHeader is the fixed column order of the downloadable client
// table.
var TableHeader = []string{"Client", "Country", "Currency", "Loan Amount", "Outstanding", "Latest Due Date", "Days Overdue", "Risk"}

// TableXLSX renders the ranked-client table of an analysis as a
// single-sheet workbook, one row per ranked client in ranking order.
func TableXLSX(a *Analysis) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(TableHeader))
	for i, h := range TableHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, row := range TableRows(a) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		cells := []interface{}{
			row.Name,
			row.Country,
			row.Currency,
			row.LoanAmount,
			row.Outstanding,
			row.LatestDueDate,
			row.DaysOverdue,
			row.RiskBadge,
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("write client row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
