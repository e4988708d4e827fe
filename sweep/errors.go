package sweep

import (
	"fmt"

	"github.com/katalvlaran/chiplet"
)

// ErrBaseCost indicates a base evaluation whose total cost is zero or not
// finite, which leaves relative sensitivity undefined.
var ErrBaseCost = fmt.Errorf("sweep: base cost must be finite and positive: %w", chiplet.ErrCalculation)
