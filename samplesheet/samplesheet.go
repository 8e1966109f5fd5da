// Package samplesheet loads plate sample assignments from the formats lab
// manifests actually arrive in: delimited text with a sniffed delimiter,
// legacy .xls and modern .xlsx workbooks, and JSON well maps, read from
// local paths or Google Storage objects, optionally compressed.
package samplesheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"

	"github.com/plateworks/platemap"
)

// Header columns recognized in tabular sheets. The first two are required;
// the plate columns are optional.
const (
	colWellIndex = "well_index"
	colSampleID  = "sample_id"
	colPlateName = "plate_name"
	colPlateID   = "plate_id"
)

// Read parses a delimited sample sheet. The delimiter is sniffed, the
// header row must carry well_index and sample_id columns, plate_name and
// plate_id columns are optional, and unknown columns are ignored. Blank
// cells parse as null, so a sparse sheet never clears wells it does not
// mention.
func Read(r io.Reader) (platemap.SampleTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return parseDelimited(raw)
}

func parseDelimited(raw []byte) (platemap.SampleTable, error) {
	delim := DetermineDelimiter(bytes.NewReader(raw))

	hr := csv.NewReader(bytes.NewReader(raw))
	hr.Comma = delim
	hr.TrimLeadingSpace = true
	header, err := hr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: sample sheet is empty", platemap.ErrConfiguration)
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	if _, err := columnPositions(header); err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = delim
	cr.TrimLeadingSpace = true

	rows := []*platemap.SampleRow{}
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	table := make(platemap.SampleTable, 0, len(rows))
	for _, row := range rows {
		table = append(table, *row)
	}

	return table, nil
}

// columns holds the 0-based positions of the recognized sheet columns, -1
// when absent. The workbook readers share it; the delimited reader only
// uses it to enforce the header contract, since gocsv maps by name.
type columns struct {
	wellIndex int
	sampleID  int
	plateName int
	plateID   int
}

func columnPositions(header []string) (columns, error) {
	cols := columns{wellIndex: -1, sampleID: -1, plateName: -1, plateID: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case colWellIndex:
			cols.wellIndex = i
		case colSampleID:
			cols.sampleID = i
		case colPlateName:
			cols.plateName = i
		case colPlateID:
			cols.plateID = i
		}
	}

	if cols.wellIndex < 0 || cols.sampleID < 0 {
		return cols, fmt.Errorf("%w: sample sheet must have %q and %q columns, got %v",
			platemap.ErrConfiguration, colWellIndex, colSampleID, header)
	}

	return cols, nil
}

// cellAt treats a missing or blank cell as null. Workbook rows are ragged:
// trailing empty cells are simply absent.
func cellAt(cells []string, idx int) null.String {
	if idx < 0 || idx >= len(cells) {
		return null.String{}
	}

	return null.NewString(cells[idx], cells[idx] != "")
}

func rowFromCells(cells []string, cols columns) platemap.SampleRow {
	return platemap.SampleRow{
		WellIndex: cellAt(cells, cols.wellIndex).ValueOrZero(),
		SampleID:  cellAt(cells, cols.sampleID),
		PlateName: cellAt(cells, cols.plateName),
		PlateID:   cellAt(cells, cols.plateID),
	}
}
