package die

import "math"

// IsInfiniteCost reports the sentinel produced when nothing passes a test stage.
func IsInfiniteCost(v float64) bool { return math.IsInf(v, 1) }

// MaskCost is the die's share of its mask set.
func (d *Die) MaskCost() float64 {
	var c float64
	for _, l := range d.stackup {
		c += l.MaskCost()
	}
	return c * d.spec.ReticleShare
}

// NRECost is the per-unit non-recurring cost of the subtree: design, mask
// and pattern generation amortized over each die's quantity.
func (d *Die) NRECost() float64 {
	nre := (d.nreDesign + d.MaskCost() + d.test.ATPGCost()) / float64(d.spec.Quantity)
	for _, c := range d.Children() {
		nre += c.NRECost()
	}
	return nre
}

// TotalCost is the per-unit cost of a good assembly including NRE.
func (d *Die) TotalCost() float64 { return d.cost + d.NRECost() }

// SelfPerfectYieldCost is the bare die cost as if every die passed self test.
func (d *Die) SelfPerfectYieldCost() float64 {
	if d.selfCost.IsOverridden() {
		return d.selfCost.Value()
	}
	return d.layerCost + d.selfTestCost
}

// PerfectYieldCost is Cost with every yield taken as 1.
func (d *Die) PerfectYieldCost() float64 {
	c := d.SelfPerfectYieldCost() + d.assemblyCost + d.assemblyTestCost
	for _, ch := range d.Children() {
		c += ch.PerfectYieldCost()
	}
	return c
}

// ScrapCost is the part of Cost paid for parts discarded at test.
func (d *Die) ScrapCost() float64 { return d.cost - d.PerfectYieldCost() }

// TotalNonScrapCost is PerfectYieldCost plus NRE.
func (d *Die) TotalNonScrapCost() float64 { return d.PerfectYieldCost() + d.NRECost() }

// AssemblyCost is the cost of bonding the children onto this die.
func (d *Die) AssemblyCost() float64 { return d.assemblyCost }

// AssemblyTestCost is the tester cost of the assembled stack.
func (d *Die) AssemblyTestCost() float64 { return d.assemblyTestCost }
