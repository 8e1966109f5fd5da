package platemap

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Each grid cell is printed centered in a field this wide.
const cellWidth = 10

// placeholder marks wells with no assigned sample.
const placeholder = "-"

// Matrix reshapes the flat, column-major well sequence into a Rows x Cols
// grid of sample IDs, inverting the generation order so that matrix[r][c]
// holds the well at row letter r and 1-based column c+1.
func (p *Plate) Matrix() [][]null.String {
	m := make([][]null.String, p.Rows)
	for r := 0; r < p.Rows; r++ {
		m[r] = make([]null.String, p.Cols)
		for c := 0; c < p.Cols; c++ {
			m[r][c] = p.Wells[c*p.Rows+r].SampleID
		}
	}

	return m
}

// RenderMatrix writes the plate as a human-readable grid: two metadata
// lines, a centered column-number header, then one line per row with each
// sample ID centered in a fixed-width cell and unassigned wells shown as a
// dash.
func (p *Plate) RenderMatrix(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Plate Name: %s\n", p.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Plate ID: %s\n", p.ID); err != nil {
		return err
	}

	// Row labels are a single letter on plates up to 26 rows; taller plates
	// get a wider gutter so the grid stays aligned.
	gutter := len(RowLabel(p.Rows - 1))

	header := make([]string, p.Cols)
	for c := 0; c < p.Cols; c++ {
		header[c] = center(strconv.Itoa(c+1), cellWidth)
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", gutter+2), strings.Join(header, " ")); err != nil {
		return err
	}

	for r, row := range p.Matrix() {
		cells := make([]string, len(row))
		for c, id := range row {
			if id.Valid {
				cells[c] = center(id.String, cellWidth)
			} else {
				cells[c] = center(placeholder, cellWidth)
			}
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", gutter, RowLabel(r), strings.Join(cells, " ")); err != nil {
			return err
		}
	}

	return nil
}

// String renders the matrix, which is handy in logs and debugging.
func (p *Plate) String() string {
	var sb strings.Builder

	// strings.Builder writes cannot fail.
	_ = p.RenderMatrix(&sb)

	return sb.String()
}

// center pads s to width w, placing any surplus space on the right.
func center(s string, w int) string {
	if len(s) >= w {
		return s
	}

	left := (w - len(s)) / 2

	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}
