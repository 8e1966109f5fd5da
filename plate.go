// Package platemap models rectangular microplates as both a flat table of
// well records and a row-by-column grid, and merges sample assignments into
// them from map-shaped or table-shaped sources.
package platemap

import (
	"fmt"
	"strconv"
)

// Standard 96-well plate geometry: rows A-H, columns 1-12.
const (
	DefaultRows = 8
	DefaultCols = 12
)

// Plate is a rectangular grid of wells with an optional human-readable
// name and barcode-style ID. Wells are stored column-major: all rows of
// column 1, then all rows of column 2, and so on. Matrix relies on this
// order.
type Plate struct {
	Rows  int
	Cols  int
	Name  string
	ID    string
	Wells []Well
}

// New builds the full well grid and then assigns any initial samples.
// Passing 0 for rows or cols selects the standard 96-well geometry. The
// plate name and ID may be empty. initial may be nil, a SampleMap, or a
// SampleTable; see AssignSamples.
func New(rows, cols int, name, id string, initial SampleSource) (*Plate, error) {
	if rows == 0 {
		rows = DefaultRows
	}
	if cols == 0 {
		cols = DefaultCols
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: plate dimensions must be positive, got %dx%d", ErrConfiguration, rows, cols)
	}

	p := &Plate{
		Rows:  rows,
		Cols:  cols,
		Name:  name,
		ID:    id,
		Wells: make([]Well, 0, rows*cols),
	}

	for col := 1; col <= cols; col++ {
		for row := 0; row < rows; row++ {
			letter := RowLabel(row)
			p.Wells = append(p.Wells, Well{
				PlateName: name,
				PlateID:   id,
				WellIndex: letter + strconv.Itoa(col),
				Row:       letter,
				Column:    col,
			})
		}
	}

	if err := p.AssignSamples(initial); err != nil {
		return nil, err
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks that the per-well copies of the plate name and ID agree
// with the plate-level fields. New runs this after initial assignment; a
// sample table that restamps those fields can trip it.
func (p *Plate) Validate() error {
	for i := range p.Wells {
		if p.Wells[i].PlateName != p.Name {
			return fmt.Errorf("%w: plate name must be consistent across all wells (well %s has %q, plate has %q)",
				ErrConfiguration, p.Wells[i].WellIndex, p.Wells[i].PlateName, p.Name)
		}
		if p.Wells[i].PlateID != p.ID {
			return fmt.Errorf("%w: plate ID must be consistent across all wells (well %s has %q, plate has %q)",
				ErrConfiguration, p.Wells[i].WellIndex, p.Wells[i].PlateID, p.ID)
		}
	}

	return nil
}

// WellAt returns the well with the given index (e.g. "B7"), or false if
// the index is off the plate.
func (p *Plate) WellAt(index string) (*Well, bool) {
	for i := range p.Wells {
		if p.Wells[i].WellIndex == index {
			return &p.Wells[i], true
		}
	}

	return nil, false
}
