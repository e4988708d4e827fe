package wafer

import "math"

// DiesPerWafer estimates how many dies described by g fit on the wafer.
//
// Errors:
//   - ErrDieTooLarge    — √(X²+Y²) exceeds UsableDiameter/2.
//   - ErrZeroDimension  — X or Y is zero.
//   - ErrNoDiesPerWafer — the discipline found no placement.
func DiesPerWafer(g Geometry) (int, error) {
	if math.Hypot(g.X, g.Y) > g.UsableDiameter/2 {
		return 0, ErrDieTooLarge
	}
	if g.X == 0 || g.Y == 0 {
		return 0, ErrZeroDimension
	}

	var n int
	if g.Fill == Grid {
		n = gridFill(g.X, g.Y, g.UsableDiameter, g.Dicing)
	} else {
		n = lineFill(g.X, g.Y, g.UsableDiameter, g.Dicing)
	}
	if n <= 0 {
		return 0, ErrNoDiesPerWafer
	}

	return n, nil
}

// gridFill simulates a true grid for each left-column height h until the
// column reaches the crossover height, keeping the best count.
//
// For every h:
//  1. The first h rows share the chord at height h·ye/2 from the centre.
//  2. A right-edge correction adds one die per row when both of its outer
//     corners stay inside the circle.
//  3. Remaining rows above and below are snapped to the grid columns that
//     start at the first row's left edge.
func gridFill(x, y, usable, dicing float64) int {
	xe, ye := x+dicing, y+dicing
	r := usable / 2

	firstRowHeight := ye / 2
	firstColumnDist := r - math.Sqrt(r*r-firstRowHeight*firstRowHeight)
	reach := r - firstColumnDist - xe
	crossover := math.Sqrt(r*r - reach*reach)

	best := 0
	for h := 1; float64(h)*ye/2 < crossover; h++ {
		dies := 0
		rowChordHeight := float64(h)*ye/2 - dicing/2
		chord := 2 * math.Sqrt(r*r-rowChordHeight*rowChordHeight)

		perRow := math.Floor((chord + dicing) / xe)
		dies += int(perRow) * h
		rowChordHeight += ye

		endOfRows := perRow*xe - chord/2
		edge := endOfRows + xe
		for i := 0; i < h; i++ {
			yy := ye*float64(i) - rowChordHeight + ye
			if edge*edge+yy*yy <= r*r && edge*edge+(yy+ye)*(yy+ye) <= r*r {
				dies++
			}
		}

		startLeft := (usable - chord) / 2
		for rowChordHeight < usable/2 {
			chord = 2 * math.Sqrt(r*r-rowChordHeight*rowChordHeight)
			firstFit := (usable - chord) / 2
			start := math.Ceil((firstFit-startLeft)/xe)*xe + startLeft
			effective := chord - (start - firstFit)
			dies += 2 * int(math.Floor(effective/xe))
			rowChordHeight += ye
		}

		if dies > best {
			best = dies
		}
	}

	return best
}

// lineFill returns the larger of the centred-row and straddling-pair counts.
func lineFill(x, y, usable, dicing float64) int {
	xe, ye := x+dicing, y+dicing
	r := usable / 2

	// Case 1: one row centred on the horizontal diameter.
	centred := 0
	rowChordHeight := ye / 2
	chord := chordAt(r, rowChordHeight-dicing/2) + dicing
	centred += int(math.Floor(chord / xe))
	rowChordHeight += ye
	for rowChordHeight < usable/2 {
		chord = chordAt(r, rowChordHeight-dicing/2) + dicing
		centred += 2 * int(math.Floor(chord/xe))
		rowChordHeight += ye
	}

	// Case 2: two rows meeting at the horizontal diameter.
	straddle := 0
	rowChordHeight = ye
	chord = chordAt(r, rowChordHeight-dicing/2) + dicing
	straddle += 2 * int(math.Floor(chord/xe))
	rowChordHeight += ye
	for rowChordHeight < usable/2 {
		chord = chordAt(r, rowChordHeight-dicing/2) + dicing
		straddle += 2 * int(math.Floor(chord/xe))
		rowChordHeight += ye
	}

	return max(centred, straddle)
}

// chordAt is the chord length of a circle of radius r at distance h from its centre.
func chordAt(r, h float64) float64 {
	return 2 * math.Sqrt(r*r-h*h)
}
