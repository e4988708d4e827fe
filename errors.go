package chiplet

import "errors"

var (
	// ErrConfiguration roots every failure caused by a malformed, out-of-range,
	// missing or unresolved input, and by mutation of a finalized record.
	ErrConfiguration = errors.New("chiplet: configuration error")

	// ErrCalculation roots every failure caused by a physically nonsensical
	// input detected mid-computation (negative area, zero dies per wafer, ...).
	ErrCalculation = errors.New("chiplet: calculation error")
)
