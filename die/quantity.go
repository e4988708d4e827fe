package die

// Quantity is a derived value that a black-box parameter may replace.
// It is resolved once, when the die is built.
type Quantity struct {
	v          float64
	overridden bool
}

// Computed wraps a value produced by the model.
func Computed(v float64) Quantity { return Quantity{v: v} }

// Overridden wraps a value supplied as a black-box parameter.
func Overridden(v float64) Quantity { return Quantity{v: v, overridden: true} }

// resolve returns Overridden(*bb) when bb is set, otherwise the result of compute.
func resolve(bb *float64, compute func() (float64, error)) (Quantity, error) {
	if bb != nil {
		return Overridden(*bb), nil
	}
	v, err := compute()
	if err != nil {
		return Quantity{}, err
	}
	return Computed(v), nil
}

// Value returns the quantity regardless of its origin.
func (q Quantity) Value() float64 { return q.v }

// IsOverridden reports whether a black-box parameter supplied the value.
func (q Quantity) IsOverridden() bool { return q.overridden }
