package platemap

import "errors"

// ErrConfiguration indicates a malconfigured plate or sample source:
// non-positive dimensions, plate-level fields that disagree across wells,
// a sheet missing a required column, or a duplicated well index within one
// source.
var ErrConfiguration = errors.New("invalid plate configuration")

// ErrInvalidInput indicates a sample source payload that is not one of the
// recognized formats.
var ErrInvalidInput = errors.New("invalid sample input")
