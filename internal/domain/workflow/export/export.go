// Package export serializes workflow step sequences into the formats
// the editor offers for download: pretty JSON, a text report, CSV, and
// an XLSX workbook.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mvandrade/loanlens/internal/domain/workflow"
)

// CSVHeader is the fixed column order of the CSV and XLSX exports.
var CSVHeader = []string{"Step", "Title", "Type", "Owner", "EstimatedTime", "Description"}

// JSON renders the steps as pretty-printed JSON.
func JSON(steps []workflow.Step) ([]byte, error) {
	return json.MarshalIndent(steps, "", "  ")
}

// Text renders a human-readable report: one numbered block per step
// with the optional owner, time and description lines indented.
func Text(steps []workflow.Step) []byte {
	var b strings.Builder
	b.WriteString("Workflow Steps\n\n")
	for _, s := range steps {
		fmt.Fprintf(&b, "%d. %s [%s]\n", s.Step, s.Title, s.Type)
		if s.Owner != "" {
			fmt.Fprintf(&b, "   Owner: %s\n", s.Owner)
		}
		if s.EstimatedTime != "" {
			fmt.Fprintf(&b, "   Time: %s\n", s.EstimatedTime)
		}
		if s.Description != "" {
			fmt.Fprintf(&b, "   %s\n", s.Description)
		}
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// CSV renders the steps with the fixed header. Title, Owner,
// EstimatedTime and Description are always quoted, with embedded
// quotes doubled.
func CSV(steps []workflow.Step) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(CSVHeader, ","))
	b.WriteByte('\n')
	for _, s := range steps {
		row := []string{
			strconv.Itoa(s.Step),
			quote(s.Title),
			s.Type,
			quote(s.Owner),
			quote(s.EstimatedTime),
			quote(s.Description),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// XLSX renders the steps as a single-sheet workbook with the same
// columns as the CSV export.
func XLSX(steps []workflow.Step) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(CSVHeader))
	for i, h := range CSVHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, s := range steps {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{s.Step, s.Title, s.Type, s.Owner, s.EstimatedTime, s.Description}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write step row %d: %w", s.Step, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
