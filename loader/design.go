package loader

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chiplet/die"
)

type designDoc struct {
	Chip *chipDoc `yaml:"chip"`
}

// chipDoc is one node of the die tree. Pointer fields distinguish an absent
// attribute from a zero one.
type chipDoc struct {
	Name            string    `yaml:"name"`
	CopyFrom        string    `yaml:"copy_from"`
	StackSide       string    `yaml:"stack_side"`
	Orientation     string    `yaml:"orientation"`
	CoreArea        *float64  `yaml:"core_area"`
	AspectRatio     *float64  `yaml:"aspect_ratio"`
	FractionMemory  *float64  `yaml:"fraction_memory"`
	FractionLogic   *float64  `yaml:"fraction_logic"`
	FractionAnalog  *float64  `yaml:"fraction_analog"`
	GateFlopRatio   *float64  `yaml:"gate_flop_ratio"`
	ReticleShare    *float64  `yaml:"reticle_share"`
	Buried          bool      `yaml:"buried"`
	BBArea          *float64  `yaml:"bb_area"`
	BBCost          *float64  `yaml:"bb_cost"`
	BBQuality       *float64  `yaml:"bb_quality"`
	BBPower         *float64  `yaml:"bb_power"`
	Quantity        *int      `yaml:"quantity"`
	CoreVoltage     *float64  `yaml:"core_voltage"`
	Power           *float64  `yaml:"power"`
	WaferProcess    string    `yaml:"wafer_process"`
	AssemblyProcess string    `yaml:"assembly_process"`
	TestProcess     string    `yaml:"test_process"`
	Stackup         *stackup  `yaml:"stackup"`
	XLocation       *float64  `yaml:"x_location"`
	YLocation       *float64  `yaml:"y_location"`
	Chips           []chipDoc `yaml:"chips"`
}

func (c *chipDoc) missing() []string {
	var m []string
	need := func(field string, ok bool) {
		if !ok {
			m = append(m, field)
		}
	}
	need("name", c.Name != "")
	need("wafer_process", c.WaferProcess != "")
	need("assembly_process", c.AssemblyProcess != "")
	need("test_process", c.TestProcess != "")
	need("stackup", c.Stackup != nil)
	need("core_area", c.CoreArea != nil)
	need("fraction_memory", c.FractionMemory != nil)
	need("fraction_logic", c.FractionLogic != nil)
	need("fraction_analog", c.FractionAnalog != nil)
	need("gate_flop_ratio", c.GateFlopRatio != nil)
	need("quantity", c.Quantity != nil)
	need("power", c.Power != nil)
	need("core_voltage", c.CoreVoltage != nil)
	return m
}

func value[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// spec converts the node and its children; elem locates the node in error
// messages.
func (c *chipDoc) spec(elem string) (die.Spec, error) {
	side, err := die.ParseStackSide(c.StackSide)
	if err != nil {
		return die.Spec{}, fmt.Errorf("%s: %w", elem, err)
	}
	if c.CopyFrom != "" {
		// The source sibling supplies everything else.
		return die.Spec{Name: c.Name, CopyFrom: c.CopyFrom, StackSide: side,
			XLocation: c.XLocation, YLocation: c.YLocation}, nil
	}
	if m := c.missing(); len(m) > 0 {
		return die.Spec{}, fmt.Errorf("%s: %w: %s", elem, ErrRequired, strings.Join(m, ", "))
	}
	orient, err := die.ParseOrientation(c.Orientation)
	if err != nil {
		return die.Spec{}, fmt.Errorf("%s: %w", elem, err)
	}
	s := die.Spec{
		Name:            c.Name,
		CoreArea:        *c.CoreArea,
		AspectRatio:     value(c.AspectRatio, 1),
		FractionMemory:  *c.FractionMemory,
		FractionLogic:   *c.FractionLogic,
		FractionAnalog:  *c.FractionAnalog,
		GateFlopRatio:   *c.GateFlopRatio,
		ReticleShare:    value(c.ReticleShare, 1),
		Buried:          c.Buried,
		Orientation:     orient,
		StackSide:       side,
		BBArea:          c.BBArea,
		BBCost:          c.BBCost,
		BBQuality:       c.BBQuality,
		BBPower:         c.BBPower,
		Quantity:        *c.Quantity,
		CoreVoltage:     *c.CoreVoltage,
		Power:           *c.Power,
		WaferProcess:    c.WaferProcess,
		AssemblyProcess: c.AssemblyProcess,
		TestProcess:     c.TestProcess,
		Stackup:         []die.StackupEntry(*c.Stackup),
		XLocation:       c.XLocation,
		YLocation:       c.YLocation,
	}
	for i := range c.Chips {
		child, err := c.Chips[i].spec(fmt.Sprintf("%s.chips[%d]", elem, i))
		if err != nil {
			return die.Spec{}, err
		}
		if child.StackSide == die.Back {
			s.Back = append(s.Back, child)
		} else {
			s.Face = append(s.Face, child)
		}
	}
	return s, nil
}

// stackup decodes either a list of {count, layer} or the compact string
// form accepted by ParseStackup.
type stackup []die.StackupEntry

func (s *stackup) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		entries, err := ParseStackup(n.Value)
		if err != nil {
			return err
		}
		*s = entries
		return nil
	case yaml.SequenceNode:
		var items []struct {
			Count *int   `yaml:"count"`
			Layer string `yaml:"layer"`
		}
		if err := n.Decode(&items); err != nil {
			return fmt.Errorf("%w: line %d: %v", die.ErrStackup, n.Line, err)
		}
		out := make([]die.StackupEntry, 0, len(items))
		for i, it := range items {
			if it.Count == nil || it.Layer == "" {
				return fmt.Errorf("%w: entry %d needs count and layer", die.ErrStackup, i)
			}
			out = append(out, die.StackupEntry{Count: *it.Count, Layer: it.Layer})
		}
		*s = out
		return nil
	}
	return fmt.Errorf("%w: line %d: expected a list or a string", die.ErrStackup, n.Line)
}

// ParseStackup parses the compact "count:layer,count:layer" form, for
// example "1:active,4:metal".
func ParseStackup(v string) ([]die.StackupEntry, error) {
	if strings.TrimSpace(v) == "" {
		return nil, fmt.Errorf("%w: empty stackup", die.ErrStackup)
	}
	parts := strings.Split(v, ",")
	out := make([]die.StackupEntry, 0, len(parts))
	for _, p := range parts {
		count, layer, ok := strings.Cut(strings.TrimSpace(p), ":")
		if !ok || strings.TrimSpace(layer) == "" {
			return nil, fmt.Errorf("%w: malformed entry %q", die.ErrStackup, p)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return nil, fmt.Errorf("%w: count in %q: %v", die.ErrStackup, p, err)
		}
		out = append(out, die.StackupEntry{Count: n, Layer: strings.TrimSpace(layer)})
	}
	return out, nil
}
