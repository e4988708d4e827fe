package wafer

import (
	"fmt"

	"github.com/katalvlaran/chiplet"
)

var (
	// ErrDieTooLarge indicates that the die diagonal exceeds the usable wafer radius.
	ErrDieTooLarge = fmt.Errorf("wafer: die too large for usable wafer: %w", chiplet.ErrCalculation)

	// ErrZeroDimension indicates a die side of length zero.
	ErrZeroDimension = fmt.Errorf("wafer: die has a zero-length side: %w", chiplet.ErrCalculation)

	// ErrNoDiesPerWafer indicates that no die fits under the chosen discipline.
	ErrNoDiesPerWafer = fmt.Errorf("wafer: zero dies per wafer: %w", chiplet.ErrCalculation)

	// ErrZeroReticle indicates a reticle with zero exposure area.
	ErrZeroReticle = fmt.Errorf("wafer: reticle area is zero: %w", chiplet.ErrCalculation)

	// ErrNegativeArea indicates a negative die area.
	ErrNegativeArea = fmt.Errorf("wafer: negative area: %w", chiplet.ErrCalculation)
)
