package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salesreport/internal/frame"
)

// WriteXLSX writes f to path as a single-sheet workbook, replacing any
// existing file. Numbers stay numeric cells; missing cells stay blank.
func WriteXLSX(f *frame.Frame, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}

	wb := excelize.NewFile()
	defer wb.Close()
	const sheet = "Sheet1"

	for c, name := range f.Columns() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := wb.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header %q: %w", name, err)
		}
	}
	for i := 0; i < f.NumRows(); i++ {
		for c, name := range f.Columns() {
			v := f.Cell(i, name)
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return err
			}
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
