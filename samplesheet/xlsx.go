package samplesheet

import (
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/xuri/excelize/v2"

	"github.com/plateworks/platemap"
)

// ReadXLSX parses the first worksheet of an .xlsx workbook, with the same
// header contract as Read.
func ReadXLSX(r io.Reader) (platemap.SampleTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sample sheet is empty", platemap.ErrConfiguration)
	}

	cols, err := columnPositions(rows[0])
	if err != nil {
		return nil, err
	}

	table := make(platemap.SampleTable, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		table = append(table, rowFromCells(cells, cols))
	}

	return table, nil
}
