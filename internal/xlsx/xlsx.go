// Package xlsx is the boundary to the spreadsheet container format. It
// reads the first sheet of a workbook into string records and writes one
// table back out under one sheet label, using excelize. Nothing here knows
// about work orders; the core drives it through its TableCodec interface.
package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets means the workbook opened fine but contains no sheets.
var ErrNoSheets = errors.New("open workbook: no sheets")

// Codec implements core.TableCodec over .xlsx workbooks.
type Codec struct{}

// Read opens a workbook and returns the first sheet's rows (header row
// included) along with the sheet's name. Cell values come back as display
// strings; trailing empty cells may be absent from a row, which ingestion
// has to tolerate.
func (Codec) Read(r io.Reader) ([][]string, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", ErrNoSheets
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook: read sheet %q: %w", sheet, err)
	}
	return rows, sheet, nil
}

// Write serializes one table under one sheet label: header row first, then
// the data rows, in the given column order.
func (Codec) Write(w io.Writer, sheet string, columns []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("write workbook: rename sheet: %w", err)
		}
	} else if sheet == "" {
		sheet = "Sheet1"
	}

	if err := setRow(f, sheet, 1, columns); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("write workbook: row %d: %w", rowNum, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write workbook: row %d: %w", rowNum, err)
	}
	return nil
}
