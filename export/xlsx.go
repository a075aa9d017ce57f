package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var ErrNoSheets = errors.New("workbook needs at least one sheet")

// WriteXLSX writes the sheets, in order, as one workbook. The header row is bold.
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, sh := range sheets {
		name := sheetName(sh.Name, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}

		cols := make([]any, len(sh.Columns))
		for j, c := range sh.Columns {
			cols[j] = c
		}
		if err := f.SetSheetRow(name, "A1", &cols); err != nil {
			return fmt.Errorf("write header of %q: %w", name, err)
		}
		if err := f.SetRowStyle(name, 1, 1, header); err != nil {
			return fmt.Errorf("style header of %q: %w", name, err)
		}

		for r, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			values := []any(row)
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return fmt.Errorf("write row %d of %q: %w", r+2, name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Excel caps sheet names at 31 characters.
func sheetName(name string, i int) string {
	if name == "" {
		name = fmt.Sprintf("Sheet%d", i+1)
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
