package die

import (
	"fmt"
	"math"
)

// Orientation is which way a die's active face points.
type Orientation int

const (
	FaceUp Orientation = iota
	FaceDown
)

// String returns the input spelling, "face-up" or "face-down".
func (o Orientation) String() string {
	if o == FaceDown {
		return "face-down"
	}
	return "face-up"
}

// ParseOrientation accepts "face-up" and "face-down"; the empty string is FaceUp.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "face-up":
		return FaceUp, nil
	case "face-down":
		return FaceDown, nil
	}
	return FaceUp, fmt.Errorf("orientation %q: %w", s, ErrParameter)
}

// StackSide is the side of its parent a die is stacked on.
type StackSide int

const (
	Face StackSide = iota
	Back
)

// String returns the input spelling, "face" or "back".
func (s StackSide) String() string {
	if s == Back {
		return "back"
	}
	return "face"
}

// ParseStackSide accepts "face" and "back"; the empty string is Face.
func ParseStackSide(s string) (StackSide, error) {
	switch s {
	case "", "face":
		return Face, nil
	case "back":
		return Back, nil
	}
	return Face, fmt.Errorf("stack side %q: %w", s, ErrParameter)
}

// StackupEntry repeats one catalog layer Count times.
type StackupEntry struct {
	Count int
	Layer string
}

// Spec is the declarative description of one die and everything stacked on it.
type Spec struct {
	Name string

	CoreArea       float64 // mm²
	AspectRatio    float64 // x/y; 0 means 1
	FractionMemory float64
	FractionLogic  float64
	FractionAnalog float64
	GateFlopRatio  float64
	ReticleShare   float64 // share of the mask set paid by this die
	Buried         bool

	Orientation Orientation
	StackSide   StackSide

	// Black-box overrides. A non-nil value replaces the computed quantity.
	BBArea    *float64
	BBCost    *float64
	BBQuality *float64
	BBPower   *float64

	Quantity    int
	CoreVoltage float64
	Power       float64 // intrinsic core power, W

	WaferProcess    string
	AssemblyProcess string
	TestProcess     string
	Stackup         []StackupEntry

	Face []Spec
	Back []Spec

	// CopyFrom names an earlier sibling whose parameters this die reuses.
	// Experimental.
	CopyFrom string

	// Display-only placement.
	XLocation *float64
	YLocation *float64
}

func (s *Spec) paramErr(field string, format string, args ...any) error {
	return fmt.Errorf("die %q.%s: %w: %s", s.Name, field, ErrParameter, fmt.Sprintf(format, args...))
}

type namedValue struct {
	field string
	v     float64
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// check validates the node's own parameters; children are checked when built.
func (s *Spec) check() error {
	if s.Name == "" {
		return fmt.Errorf("die: %w: empty name", ErrParameter)
	}
	for _, f := range []namedValue{
		{"core_area", s.CoreArea},
		{"aspect_ratio", s.AspectRatio},
		{"gate_flop_ratio", s.GateFlopRatio},
		{"reticle_share", s.ReticleShare},
		{"core_voltage", s.CoreVoltage},
		{"power", s.Power},
		{"bb_area", deref(s.BBArea)},
		{"bb_cost", deref(s.BBCost)},
		{"bb_power", deref(s.BBPower)},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return s.paramErr(f.field, "%g is not a finite nonnegative number", f.v)
		}
	}
	for _, f := range []namedValue{
		{"fraction_memory", s.FractionMemory},
		{"fraction_logic", s.FractionLogic},
		{"fraction_analog", s.FractionAnalog},
	} {
		if !(f.v >= 0 && f.v <= 1) {
			return s.paramErr(f.field, "%g not in [0,1]", f.v)
		}
	}
	if s.BBQuality != nil && !(*s.BBQuality >= 0 && *s.BBQuality <= 1) {
		return s.paramErr("bb_quality", "%g not in [0,1]", *s.BBQuality)
	}
	if s.Quantity < 1 {
		return s.paramErr("quantity", "%d < 1", s.Quantity)
	}
	for _, e := range s.Stackup {
		if e.Count < 0 {
			return fmt.Errorf("die %q: %w: count %d for layer %q", s.Name, ErrStackup, e.Count, e.Layer)
		}
		if e.Layer == "" {
			return fmt.Errorf("die %q: %w: empty layer name", s.Name, ErrStackup)
		}
	}
	return nil
}

// resolveCopies returns the children of one side with CopyFrom applied.
// earlier holds the already resolved siblings searched before this side.
func resolveCopies(children, earlier []Spec, side StackSide) ([]Spec, []string, error) {
	out := make([]Spec, len(children))
	var copied []string
	for i, c := range children {
		if c.CopyFrom == "" {
			c.StackSide = side
			out[i] = c
			continue
		}
		src, ok := findSpec(c.CopyFrom, earlier, out[:i])
		if !ok {
			return nil, nil, fmt.Errorf("die %q copy_from %q: %w", c.Name, c.CopyFrom, ErrCopyFrom)
		}
		cp := src
		if c.Name != "" {
			cp.Name = c.Name
		}
		cp.StackSide = side
		cp.CopyFrom = ""
		cp.XLocation, cp.YLocation = c.XLocation, c.YLocation
		out[i] = cp
		copied = append(copied, cp.Name)
	}
	return out, copied, nil
}

func findSpec(name string, lists ...[]Spec) (Spec, bool) {
	for _, l := range lists {
		for _, s := range l {
			if s.Name == name {
				return s, true
			}
		}
	}
	return Spec{}, false
}
