//go:build !noxlsx

package export

import (
	"github.com/xuri/excelize/v2"

	"unifimac/internal/labeler"
)

const xlsxSheet = "Sheet1"

func init() {
	register(FormatXLSX, writeXLSX)
}

func writeXLSX(entries []labeler.Entry, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(xlsxSheet, "A1", &[]interface{}{"MAC", "Name"}); err != nil {
		return err
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &[]interface{}{e.MAC, e.Label}); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
