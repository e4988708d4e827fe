package die

import (
	"fmt"
	"strings"
)

// Walk visits the subtree in post-order, face children before back
// children, and stops at the first error fn returns.
func (d *Die) Walk(fn func(*Die) error) error {
	for _, c := range d.Children() {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return fn(d)
}

func optional(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *p)
}

// String returns a multi-line description of the subtree.
func (d *Die) String() string {
	var sb strings.Builder
	d.describe(&sb, "")
	return sb.String()
}

func (d *Die) describe(sb *strings.Builder, indent string) {
	s := d.spec
	line := func(format string, args ...any) {
		sb.WriteString(indent)
		fmt.Fprintf(sb, format, args...)
		sb.WriteByte('\n')
	}

	line("--- Die: %s ---", s.Name)
	line("  Processes: wafer %s, assembly %s, test %s", d.wafer.Name(), d.assembly.Name(), d.test.Name())
	if s.BBArea != nil || s.BBCost != nil || s.BBQuality != nil || s.BBPower != nil {
		line("  Black-box: area=%s cost=%s quality=%s power=%s",
			optional(s.BBArea), optional(s.BBCost), optional(s.BBQuality), optional(s.BBPower))
	}
	line("  Orientation: %s, stacked on %s", s.Orientation, s.StackSide)
	if s.XLocation != nil || s.YLocation != nil {
		line("  Location: (%s, %s)", optional(s.XLocation), optional(s.YLocation))
	}
	line("  Core area: %.2f mm^2, aspect ratio %.2f", s.CoreArea, s.AspectRatio)
	if !d.area.IsOverridden() {
		line("  Pad area: %.2f mm^2, IO area: %.2f mm^2, TSV area: %.2f mm^2", d.padArea, d.ioArea, d.tsvArea)
	}
	line("  Fractions: %g%% memory, %g%% logic, %g%% analog",
		s.FractionMemory*100, s.FractionLogic*100, s.FractionAnalog*100)
	line("  Area: %.2f mm^2", d.area.Value())
	line("  Power: %.2f W core, %.2f W IO, %.2f W stack, %.2f W total",
		s.Power, d.ioPower, d.stackPower, d.totalPower.Value())
	line("  Self yield (true/test): %.4f / %.4f, quality %.4f", d.selfTrueYield, d.selfTestYield, d.selfQuality.Value())
	line("  Assembly yield (true/test): %.4f / %.4f, quality %.4f", d.chipTrueYield, d.chipTestYield, d.quality)
	line("  Cost per unit, quantity %d:", s.Quantity)
	line("    self      $%.2f", d.selfCost.Value())
	line("    assembled $%.2f", d.cost)
	line("    NRE       $%.2f", d.NRECost())
	line("    total     $%.2f", d.TotalCost())

	for _, group := range []struct {
		label string
		dies  []*Die
	}{{"face", d.face}, {"back", d.back}} {
		if len(group.dies) == 0 {
			continue
		}
		line("  Stacked on %s (%d):", group.label, len(group.dies))
		for _, c := range group.dies {
			c.describe(sb, indent+"    ")
		}
	}
}
