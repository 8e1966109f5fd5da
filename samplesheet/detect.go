package samplesheet

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the most likely rune that delimits values in
// the reader, assuming CSV-like content. When detection is inconclusive
// (e.g., a single-column sheet), it falls back to a comma.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
