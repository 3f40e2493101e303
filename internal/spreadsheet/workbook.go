// Package spreadsheet writes tabular exports as XLSX workbooks.
package spreadsheet

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var ErrNoSheets = errors.New("workbook needs at least one sheet")

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
	// Widths sets column widths by index; missing entries keep the default.
	Widths []float64
}

// Build renders the sheets, in order, into an XLSX file. The first sheet is active.
func Build(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F5F5F5"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sh.Name, err)
		}
		if err := writeSheet(f, sh, headerStyle); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sh.Name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sh Sheet, headerStyle int) error {
	if len(sh.Header) > 0 {
		header := make([]any, len(sh.Header))
		for i, h := range sh.Header {
			header[i] = h
		}
		if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(len(sh.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sh.Name, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for i, row := range sh.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
			return err
		}
	}

	for i, w := range sh.Widths {
		if w <= 0 {
			continue
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.Name, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
