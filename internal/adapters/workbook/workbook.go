// Package workbook exports the prediction rows as an Excel workbook with one
// sheet per population.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/marchprep/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SheetMen   = "men"
	SheetWomen = "women"
)

// Write saves both populations' rows to path.
func Write(path string, men []model.MenRow, women []model.WomenRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create workbook dir: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetMen); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetWomen); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	menRows := make([][]any, len(men))
	for i, r := range men {
		menRows[i] = r.Values()
	}
	if err := writeSheet(f, SheetMen, model.MenHeader, menRows); err != nil {
		return err
	}

	womenRows := make([][]any, len(women))
	for i, r := range women {
		womenRows[i] = r.Values()
	}
	if err := writeSheet(f, SheetWomen, model.WomenHeader, womenRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i, err)
		}
	}
	return nil
}
