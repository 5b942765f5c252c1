package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"sheet2ddl/internal/schema"
)

const exportSheet = "Sheet1"

// Write stores cols as an .xlsx workbook that Load reads back with the same
// layout. Rows above the header carry a title so the header lands on
// layout.HeaderRowXLSX.
func Write(w io.Writer, cols []schema.Column, layout Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	row := 1
	for ; row <= layout.HeaderRowXLSX; row++ {
		title := ""
		if row == 1 && len(cols) > 0 {
			title = fmt.Sprintf("Column definitions: %s", cols[0].TableName)
		}
		if err := setRow(f, row, []interface{}{title}); err != nil {
			return err
		}
	}

	header := make([]interface{}, 0, 5)
	for _, h := range layout.required() {
		header = append(header, h)
	}
	if err := setRow(f, row, header); err != nil {
		return err
	}

	for _, c := range cols {
		row++
		pk := ""
		if c.IsPK {
			pk = layout.PKMarker
		}
		if err := setRow(f, row, []interface{}{c.TableName, c.Name, c.SourceType, c.Length, pk}); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(exportSheet, cell, &values)
}
