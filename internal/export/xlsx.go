// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/lmartins/bibliostat/pkg/types"
)

const sheetName = "records"

// Fixed document timestamps keep XLSX output byte-identical for the same
// record set.
const fixedDocTime = "2000-01-01T00:00:00Z"

// WriteXLSX writes records as a single-sheet XLSX workbook with the same
// columns as the CSV export.
func WriteXLSX(w io.Writer, records []types.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:        "bibliostat",
		LastModifiedBy: "bibliostat",
		Created:        fixedDocTime,
		Modified:       fixedDocTime,
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	if err := writeRow(f, 1, Columns); err != nil {
		return err
	}
	for i, r := range records {
		if err := writeRow(f, i+2, Row(r)); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, cells []string) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("setting cell %s: %w", cell, err)
		}
	}
	return nil
}
