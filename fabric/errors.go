package fabric

import (
	"fmt"

	"github.com/katalvlaran/chiplet"
)

var (
	// ErrShape indicates matrices that are not len(blocks)×len(blocks), or a
	// type given without both matrices.
	ErrShape = fmt.Errorf("fabric: matrix shape mismatch: %w", chiplet.ErrConfiguration)

	// ErrValue indicates a negative or non-finite link count, or a
	// utilization outside [0,1].
	ErrValue = fmt.Errorf("fabric: invalid matrix entry: %w", chiplet.ErrConfiguration)

	// ErrDuplicate indicates a repeated block name or IO type.
	ErrDuplicate = fmt.Errorf("fabric: duplicate name: %w", chiplet.ErrConfiguration)

	// ErrNet indicates a net that cannot be turned into IO instances.
	ErrNet = fmt.Errorf("fabric: invalid net: %w", chiplet.ErrConfiguration)
)
