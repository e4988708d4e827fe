package process

import (
	"fmt"

	"github.com/katalvlaran/chiplet"
)

// Configuration failures. All of them match chiplet.ErrConfiguration.
var (
	// ErrOutOfRange indicates a value outside the field's allowed range.
	ErrOutOfRange = fmt.Errorf("process: value out of range: %w", chiplet.ErrConfiguration)

	// ErrNotFinite indicates a NaN or ±Inf value.
	ErrNotFinite = fmt.Errorf("process: value is NaN or Inf: %w", chiplet.ErrConfiguration)

	// ErrFinalized indicates an attempt to modify a finalized record.
	ErrFinalized = fmt.Errorf("process: record is finalized: %w", chiplet.ErrConfiguration)

	// ErrMissingField indicates that Finalize found a required field unset.
	ErrMissingField = fmt.Errorf("process: required field not set: %w", chiplet.ErrConfiguration)

	// ErrNotFinalized indicates that a catalog was offered a record still open for mutation.
	ErrNotFinalized = fmt.Errorf("process: record is not finalized: %w", chiplet.ErrConfiguration)

	// ErrDuplicateName indicates two records of the same kind sharing a name.
	ErrDuplicateName = fmt.Errorf("process: duplicate name: %w", chiplet.ErrConfiguration)

	// ErrUnknownName indicates a lookup miss in a Catalog.
	ErrUnknownName = fmt.Errorf("process: unknown name: %w", chiplet.ErrConfiguration)
)

// Calculation failures. All of them match chiplet.ErrCalculation.
var (
	// ErrScanChain indicates a zero gate-flop ratio or scan-chain count in the
	// scan-chain length heuristic.
	ErrScanChain = fmt.Errorf("process: scan-chain heuristic undefined: %w", chiplet.ErrCalculation)

	// ErrNegativeLitho indicates a negative litho percentage reaching the cost model.
	ErrNegativeLitho = fmt.Errorf("process: negative litho percent: %w", chiplet.ErrCalculation)
)
