package die

import (
	"fmt"

	"github.com/katalvlaran/chiplet"
)

var (
	// ErrParameter indicates a die parameter outside its allowed range.
	ErrParameter = fmt.Errorf("die: invalid parameter: %w", chiplet.ErrConfiguration)

	// ErrStackup indicates a negative layer count or an empty layer name.
	ErrStackup = fmt.Errorf("die: invalid stackup: %w", chiplet.ErrConfiguration)

	// ErrCopyFrom indicates a CopyFrom naming no earlier sibling.
	ErrCopyFrom = fmt.Errorf("die: copy source not found: %w", chiplet.ErrConfiguration)

	// ErrReach indicates an IO reach shorter than the die separation.
	ErrReach = fmt.Errorf("die: reach smaller than die separation: %w", chiplet.ErrCalculation)

	// ErrBondingPitch indicates a zero or negative effective bonding pitch.
	ErrBondingPitch = fmt.Errorf("die: bonding pitch must be positive: %w", chiplet.ErrCalculation)

	// ErrPowerPad indicates power that no pad can deliver.
	ErrPowerPad = fmt.Errorf("die: zero power per pad: %w", chiplet.ErrCalculation)
)

func (d *Die) errorf(step string, err error) error {
	return fmt.Errorf("die %q %s: %w", d.spec.Name, step, err)
}
