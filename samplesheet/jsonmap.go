package samplesheet

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/carbocation/pfx"

	"github.com/plateworks/platemap"
)

// ReadJSONMap parses a JSON object keyed by well index, e.g.
// {"A1":"S001","H12":"S096"}.
func ReadJSONMap(r io.Reader) (platemap.SampleMap, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	m := map[string]string{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", platemap.ErrInvalidInput, err)
	}

	return platemap.SampleMap(m), nil
}
