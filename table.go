package platemap

import (
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"
)

// WriteTable emits the flat well table, in generation order, as delimited
// text with a header row. Unassigned sample IDs become empty fields, which
// parse back as null, so an exported table can be re-applied as a sample
// source without clobbering assignments from other sheets.
func (p *Plate) WriteTable(w io.Writer, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	return gocsv.MarshalCSV(&p.Wells, gocsv.NewSafeCSVWriter(cw))
}
