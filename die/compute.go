package die

import (
	"math"

	"github.com/katalvlaran/chiplet/process"
)

// compute runs the fixed evaluation sequence. Every child is already built.
func (d *Die) compute() error {
	children := d.Children()
	n := len(children)

	for _, c := range children {
		d.stackPower += c.totalPower.Value()
	}
	d.ioPower = d.signalPower()
	if d.spec.BBPower != nil {
		d.totalPower = Overridden(*d.spec.BBPower + d.stackPower)
	} else {
		d.totalPower = Computed(d.spec.Power + d.ioPower + d.stackPower)
	}
	d.nreDesign = d.nreDesignCost()

	var err error
	if d.facePads, d.backPads, err = d.sidePadCounts(); err != nil {
		return err
	}
	d.ioArea = d.computeIOArea()
	d.stackedArea = d.stackedDieArea()
	if d.area, err = resolve(d.spec.BBArea, d.computeArea); err != nil {
		return err
	}

	d.selfTrueYield = 1
	for _, l := range d.stackup {
		d.selfTrueYield *= l.Yield(d.spec.CoreArea + d.ioArea)
	}
	d.selfTestYield = d.test.Yield(process.SelfTest, d.selfTrueYield)
	if d.selfQuality, err = resolve(d.spec.BBQuality, d.computeSelfQuality); err != nil {
		return err
	}

	y := d.selfQuality.Value()
	for _, c := range children {
		y *= c.selfQuality.Value()
	}
	y *= d.assembly.Yield(n, d.childSignalCount(), d.TSVCount(), d.stackedArea)
	y *= d.wafer.ProcessYield()
	d.chipTrueYield = y
	d.chipTestYield = d.test.Yield(process.AssemblyTest, y)
	d.quality = process.Quality(y, d.chipTestYield)

	if d.selfCost, err = resolve(d.spec.BBCost, d.computeSelfCost); err != nil {
		return err
	}

	d.assemblyCost = d.assembly.Cost(n, d.stackedArea)
	if d.assemblyTestCost, err = d.test.Cost(process.AssemblyTest, d.assemblyTestInputs()); err != nil {
		return d.errorf("assembly test cost", err)
	}
	cost := d.selfCost.Value() + d.assemblyCost + d.assemblyTestCost
	for _, c := range children {
		cost += c.cost
	}
	d.cost = perGoodPart(cost, d.chipTestYield)

	return nil
}

// perGoodPart spreads cost over the passing fraction; nothing passing is +Inf.
func perGoodPart(cost, yield float64) float64 {
	if yield > 0 {
		return cost / yield
	}
	return math.Inf(1)
}

func (d *Die) nreDesignCost() float64 {
	var perMM2 float64
	for _, c := range process.DesignClasses {
		perMM2 += d.fraction(c) * d.wafer.NRECostPerMM2(c)
	}
	return d.spec.CoreArea * perMM2
}

func (d *Die) fraction(c process.DesignClass) float64 {
	switch c {
	case process.Memory:
		return d.spec.FractionMemory
	case process.Logic:
		return d.spec.FractionLogic
	default:
		return d.spec.FractionAnalog
	}
}

// computeArea is the largest of the stacked-die footprint, the pad grid and
// the core plus IO cells and TSVs.
func (d *Die) computeArea() (float64, error) {
	if d.TSVCount() > 0 {
		d.tsvArea = d.assembly.TSVArea() * d.TSVCount()
	}
	pad, err := d.computePadArea()
	if err != nil {
		return 0, err
	}
	d.padArea = pad

	return math.Max(d.stackedArea, math.Max(pad, d.spec.CoreArea+d.ioArea+d.tsvArea)), nil
}

func (d *Die) computeSelfQuality() (float64, error) {
	return process.Quality(d.selfTrueYield, d.selfTestYield), nil
}

func (d *Die) computeSelfCost() (float64, error) {
	for _, l := range d.stackup {
		c, err := l.Cost(d.area.Value(), d.spec.AspectRatio, d.wafer)
		if err != nil {
			return 0, d.errorf("layer cost", err)
		}
		d.layerCost += c
	}
	var err error
	d.selfTestCost, err = d.test.Cost(process.SelfTest, process.TestInputs{
		Area:          d.spec.CoreArea,
		GateFlopRatio: d.spec.GateFlopRatio,
		GatesPerMM2:   d.selfGatesPerMM2(),
	})
	if err != nil {
		return 0, d.errorf("self test cost", err)
	}

	return perGoodPart(d.layerCost+d.selfTestCost, d.selfTestYield), nil
}

func (d *Die) selfGatesPerMM2() float64 {
	var g float64
	for _, l := range d.stackup {
		if l.Active() {
			g += l.GatesPerMM2()
		}
	}
	return g
}

// assemblyCoreArea sums the core area of the whole subtree.
func (d *Die) assemblyCoreArea() float64 {
	a := d.spec.CoreArea
	for _, c := range d.Children() {
		a += c.assemblyCoreArea()
	}
	return a
}

// assemblyGatesPerMM2 is the core-area weighted gate density of the subtree.
func (d *Die) assemblyGatesPerMM2() float64 {
	total := d.assemblyCoreArea()
	if total == 0 {
		return 0
	}
	sum := d.selfGatesPerMM2() * d.spec.CoreArea
	for _, c := range d.Children() {
		sum += c.assemblyGatesPerMM2() * c.assemblyCoreArea()
	}
	return sum / total
}

// assemblyTestInputs covers the die and its direct children.
func (d *Die) assemblyTestInputs() process.TestInputs {
	area := d.spec.CoreArea
	weighted := d.spec.GateFlopRatio * d.spec.CoreArea
	for _, c := range d.Children() {
		area += c.spec.CoreArea
		weighted += c.spec.GateFlopRatio * c.spec.CoreArea
	}
	var gfr float64
	if area != 0 {
		gfr = weighted / area
	}
	return process.TestInputs{
		Area:          area,
		GateFlopRatio: gfr,
		GatesPerMM2:   d.assemblyGatesPerMM2(),
	}
}
