package die

import (
	"fmt"
	"math"
	"sort"
)

// chipList is the set of block names in this die's subtree.
func (d *Die) chipList() map[string]bool {
	names := make(map[string]bool)
	var walk func(*Die)
	walk = func(n *Die) {
		names[n.spec.Name] = true
		for _, c := range n.face {
			walk(c)
		}
		for _, c := range n.back {
			walk(c)
		}
	}
	walk(d)
	return names
}

// signalCount counts the signal wires between this die's block and every
// block outside internal, and buckets them by the reach of their IO type.
// Every external block registers its reach, even with zero wires.
func (d *Die) signalCount(internal map[string]bool) (float64, map[float64]float64) {
	if !d.inFabric {
		return 0, nil
	}
	fab := d.env.fabric
	byReach := make(map[float64]float64)
	var count float64
	for _, t := range d.env.types {
		io := d.env.ios[t]
		wires := float64(io.WireCount()) * io.DirectionFactor()
		for j, name := range d.env.blocks {
			if internal[name] {
				continue
			}
			v := (fab.Links(t, d.block, j) + fab.Links(t, j, d.block)) * wires
			count += v
			byReach[io.Reach()] += v
		}
	}
	return count, byReach
}

// childSignalCount is the number of signal bonds the children make with
// blocks outside this subtree.
func (d *Die) childSignalCount() float64 {
	internal := d.chipList()
	var n float64
	for _, c := range d.Children() {
		s, _ := c.signalCount(internal)
		n += s
	}
	return n
}

// signalPower converts utilized fabric traffic to watts: Gb/s × pJ/bit × 1e-3.
func (d *Die) signalPower() float64 {
	if !d.inFabric {
		return 0
	}
	var p float64
	for _, t := range d.env.types {
		io := d.env.ios[t]
		out, in := d.env.fabric.Traffic(t, d.block)
		p += (out + in) * io.DirectionFactor() * io.Bandwidth() * io.EnergyPerBit() * 1e-3
	}
	return p
}

// computeIOArea is the area of the IO cells: TX cells for outgoing links, RX for incoming.
func (d *Die) computeIOArea() float64 {
	if !d.inFabric {
		return 0
	}
	var a float64
	for _, t := range d.env.types {
		io := d.env.ios[t]
		out, in := d.env.fabric.Fanout(t, d.block)
		a += out*io.TXArea() + in*io.RXArea()
	}
	return a
}

// powerPads is one power and one ground pad per unit of pad capacity.
func (d *Die) powerPads() (float64, error) {
	if d.spec.CoreVoltage == 0 {
		return 0, nil
	}
	perPad := d.assembly.PowerPerPad(d.spec.CoreVoltage)
	p := d.totalPower.Value()
	if perPad == 0 {
		if p == 0 {
			return 0, nil
		}
		return 0, d.errorf("power pads", ErrPowerPad)
	}
	return math.Ceil(p/perPad) * 2, nil
}

// ownPads counts signal, power and test pads of this die alone.
func (d *Die) ownPads() (float64, error) {
	power, err := d.powerPads()
	if err != nil {
		return 0, err
	}
	signals, _ := d.signalCount(d.chipList())
	return signals + power + d.test.NumTestIOs(), nil
}

// padCount is the pads this die presents to its parent: its own plus those
// of the dies on the side facing the parent, which pass through it.
func (d *Die) padCount() (float64, error) {
	n, err := d.ownPads()
	if err != nil {
		return 0, err
	}
	below := d.back
	if d.spec.Orientation == FaceDown {
		below = d.face
	}
	for _, c := range below {
		cn, err := c.padCount()
		if err != nil {
			return 0, err
		}
		n += cn
	}
	return n, nil
}

func sumPads(dies []*Die) (float64, error) {
	var n float64
	for _, c := range dies {
		cn, err := c.padCount()
		if err != nil {
			return 0, err
		}
		n += cn
	}
	return n, nil
}

// sidePadCounts returns the pads on the face and on the back. The side
// towards the parent carries padCount; the other side carries the pads of the
// dies stacked there.
func (d *Die) sidePadCounts() (face, back float64, err error) {
	if d.spec.Orientation == FaceUp {
		if face, err = sumPads(d.face); err != nil {
			return 0, 0, err
		}
		back, err = d.padCount()
	} else {
		if back, err = sumPads(d.back); err != nil {
			return 0, 0, err
		}
		face, err = d.padCount()
	}
	return face, back, err
}

func expandedArea(area, border, aspectRatio float64) float64 {
	if area <= 0 {
		return 0
	}
	x := math.Sqrt(area * aspectRatio)
	y := math.Sqrt(area / aspectRatio)
	return (x + 2*border) * (y + 2*border)
}

// stackedDieArea is the footprint of the larger stacked side: every
// non-buried child grown by half the die separation, then the sum grown by
// the edge exclusion as a square.
func (d *Die) stackedDieArea() float64 {
	side := func(dies []*Die) float64 {
		var a float64
		for _, c := range dies {
			if !c.spec.Buried {
				a += expandedArea(c.area.Value(), d.assembly.DieSeparation()/2, c.spec.AspectRatio)
			}
		}
		return a
	}
	a := math.Max(side(d.face), side(d.back))
	if a > 0 {
		a = expandedArea(a, d.assembly.EdgeExclusion(), 1)
	}
	return a
}

// bondingPitch is the coarsest pitch of every bond the die's pads take part in.
func (d *Die) bondingPitch() float64 {
	pitch := d.assembly.BondingPitch()
	if d.parent == nil {
		return pitch
	}
	pitch = math.Max(pitch, d.parent.assembly.BondingPitch())
	if d.spec.StackSide == Back {
		pitch = math.Max(pitch, d.parent.assembly.TSVPitch())
	}
	if d.spec.Orientation == FaceUp {
		pitch = math.Max(pitch, d.assembly.TSVPitch())
	}
	return pitch
}

// computePadArea sizes the pad field. Signal pads are placed by increasing
// reach, each group within a band of (reach − separation) along the edges;
// the die grows, keeping its aspect ratio, whenever a band is full. The total
// pad count must then fit on a uniform grid at the bonding pitch.
func (d *Die) computePadArea() (float64, error) {
	power, err := d.powerPads()
	if err != nil {
		return 0, err
	}
	signals, byReach := d.signalCount(d.chipList())
	pads := signals + power + d.test.NumTestIOs()

	pitch := d.bondingPitch()
	if !(pitch > 0) {
		return 0, d.errorf("pad area", ErrBondingPitch)
	}
	perPad := pitch * pitch

	var under float64
	below := d.back
	if d.spec.Orientation == FaceDown {
		below = d.face
	}
	for _, c := range below {
		under += c.area.Value()
	}

	separation := d.assembly.DieSeparation()
	if d.parent != nil {
		separation = d.parent.assembly.DieSeparation()
	}

	reaches := make([]float64, 0, len(byReach))
	for r := range byReach {
		reaches = append(reaches, r)
	}
	sort.Float64s(reaches)

	ar := d.spec.AspectRatio
	var x, y, count float64
	for _, reach := range reaches {
		band := reach - separation
		if band < 0 {
			return 0, d.errorf(fmt.Sprintf("pad area (reach %g)", reach), ErrReach)
		}
		count += byReach[reach]
		required := count*perPad + under

		var usable float64
		if band < x && band < y {
			usable = band*(x+y) - band*band
		} else {
			usable = x * y
		}
		if usable > required {
			continue
		}

		nx := math.Sqrt(required * ar)
		ny := math.Sqrt(required / ar)
		if nx > band && ny > band {
			if band == 0 {
				return 0, d.errorf(fmt.Sprintf("pad area (reach %g)", reach), ErrReach)
			}
			// Pads fill a ring of width band: required = (x + y − band)·band with x = ar·y.
			ny = (2*required/band + 2*band) / (2*ar + 2)
			nx = ar * ny
		}
		x = math.Max(x, math.Ceil(nx/pitch)*pitch)
		y = math.Max(y, math.Ceil(ny/pitch)*pitch)
	}

	required := perPad * pads
	var gx, gy float64
	switch {
	case required <= x*y:
		gx, gy = math.Ceil(x/pitch), math.Ceil(y/pitch)
	case x < y && y*y <= required:
		gy = math.Ceil(y / pitch)
		gx = math.Ceil(required / y / pitch)
	case y < x && x*x <= required:
		gx = math.Ceil(x / pitch)
		gy = math.Ceil(required / x / pitch)
	default:
		gx = math.Ceil(math.Sqrt(required) / pitch)
		gy = gx
	}

	return gx * gy * perPad, nil
}
