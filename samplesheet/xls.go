package samplesheet

import (
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/extrame/xls"

	"github.com/plateworks/platemap"
)

// ReadXLS parses the first worksheet of a legacy BIFF .xls workbook, with
// the same header contract as Read.
func ReadXLS(r io.ReadSeeker) (platemap.SampleTable, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: xls workbook has no sheets", platemap.ErrConfiguration)
	}

	headRow := sheet.Row(0)
	if headRow == nil {
		return nil, fmt.Errorf("%w: sample sheet is empty", platemap.ErrConfiguration)
	}
	cols, err := columnPositions(rowCells(headRow))
	if err != nil {
		return nil, err
	}

	table := make(platemap.SampleTable, 0, int(sheet.MaxRow))
	for i := 1; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		table = append(table, rowFromCells(rowCells(row), cols))
	}

	return table, nil
}

func rowCells(row *xls.Row) []string {
	cells := make([]string, 0, row.LastCol()+1)
	for col := 0; col <= row.LastCol(); col++ {
		cells = append(cells, row.Col(col))
	}

	return cells
}
