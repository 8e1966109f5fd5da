package platemap

import (
	"fmt"
	"log"

	"gopkg.in/guregu/null.v3"
)

// SampleSource is the closed set of sample-assignment inputs accepted by
// AssignSamples: a SampleMap, a SampleTable, or nil for "no samples".
// Implementations live in this package only.
type SampleSource interface {
	assign(p *Plate) error
}

// SampleMap assigns sample IDs by well index. Every well whose index
// appears as a key receives the mapped value; all other wells are left
// untouched.
type SampleMap map[string]string

// SampleRow is one row of a tabular sample source. SampleID, PlateName and
// PlateID are nullable: a null field leaves the corresponding well value
// alone during the merge, so a sparse sheet never clears wells it does not
// mention.
type SampleRow struct {
	WellIndex string      `csv:"well_index"`
	SampleID  null.String `csv:"sample_id"`
	PlateName null.String `csv:"plate_name"`
	PlateID   null.String `csv:"plate_id"`
}

// SampleTable assigns sample IDs by left-joining the plate's wells against
// the table on well index.
type SampleTable []SampleRow

// AssignSamples merges src into the plate in place. A nil source is a
// no-op. The well count and order never change; wells absent from src keep
// their current sample IDs. Rows of a SampleTable whose well index is not
// on the plate are ignored.
func (p *Plate) AssignSamples(src SampleSource) error {
	if src == nil {
		log.Println("No samples provided.")
		return nil
	}

	return src.assign(p)
}

func (m SampleMap) assign(p *Plate) error {
	for i := range p.Wells {
		if id, ok := m[p.Wells[i].WellIndex]; ok {
			p.Wells[i].SampleID = null.StringFrom(id)
		}
	}

	return nil
}

func (t SampleTable) assign(p *Plate) error {
	// A duplicated well index would make the merge order-dependent, so
	// reject the table before touching the plate. Rows with no well index
	// (blank padding lines in hand-made sheets) are skipped.
	byIndex := make(map[string]SampleRow, len(t))
	for _, row := range t {
		if row.WellIndex == "" {
			continue
		}
		if _, dup := byIndex[row.WellIndex]; dup {
			return fmt.Errorf("%w: duplicate well_index %q in sample table", ErrConfiguration, row.WellIndex)
		}
		byIndex[row.WellIndex] = row
	}

	for i := range p.Wells {
		row, ok := byIndex[p.Wells[i].WellIndex]
		if !ok {
			continue
		}
		if row.SampleID.Valid {
			p.Wells[i].SampleID = row.SampleID
		}
		if row.PlateName.Valid {
			p.Wells[i].PlateName = row.PlateName.String
		}
		if row.PlateID.Valid {
			p.Wells[i].PlateID = row.PlateID.String
		}
	}

	return nil
}
