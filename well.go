package platemap

import "gopkg.in/guregu/null.v3"

// Well is one addressable position on a plate. The struct doubles as one
// row of the plate's flat tabular view, so the plate-level name and ID are
// carried on every record.
type Well struct {
	PlateName string      `csv:"plate_name"`
	PlateID   string      `csv:"plate_id"`
	WellIndex string      `csv:"well_index"`
	Row       string      `csv:"row"`
	Column    int         `csv:"column"`
	SampleID  null.String `csv:"sample_id"`
}

// RowLabel converts a 0-based row offset into its letter label: 0 is "A",
// 25 is "Z", and labels continue with "AA", "AB", ... so plates taller than
// 26 rows (a 1536-well plate has 32) stay addressable.
func RowLabel(row int) string {
	var s string
	for n := row + 1; n > 0; n = (n - 1) / 26 {
		s = string(rune('A'+(n-1)%26)) + s
	}
	return s
}
