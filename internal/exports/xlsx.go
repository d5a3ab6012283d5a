// Package exports renders lead outcome data as downloadable spreadsheet
// files.
package exports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Row is one exported lead line.
type Row struct {
	Name        string
	PhoneNumber string
	Status      string
	Disposition string
	DurationMin float64
	Cost        float64
}

var exportHeader = []string{"Name", "Phone Number", "Status", "Disposition", "Duration (min)", "Cost ($)"}

// WriteXLSX renders the rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, sheetName string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if sheetName != "" && sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else {
		sheetName = defaultSheet
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []any{row.Name, row.PhoneNumber, row.Status, row.Disposition, row.DurationMin, row.Cost}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "F", 20); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteCSV renders the rows with the same columns as the workbook export.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		record := []string{
			row.Name,
			row.PhoneNumber,
			row.Status,
			row.Disposition,
			strconv.FormatFloat(row.DurationMin, 'f', -1, 64),
			strconv.FormatFloat(row.Cost, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
