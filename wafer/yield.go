package wafer

import "math"

// LayerYield returns the negative-binomial yield of one layer over area mm²:
//
//	(1 + dd·area·car/cf)^(−cf) · stitchingYield^StitchCount(area)
//
// A zero clustering factor degenerates to the Poisson limit exp(−dd·area·car).
func LayerYield(defectDensity, area, criticalAreaRatio, clusteringFactor, stitchingYield float64) float64 {
	var y float64
	if clusteringFactor == 0 {
		y = math.Exp(-defectDensity * area * criticalAreaRatio)
	} else {
		y = math.Pow(1+defectDensity*area*criticalAreaRatio/clusteringFactor, -clusteringFactor)
	}

	return y * math.Pow(stitchingYield, float64(StitchCount(area)))
}

// StitchCount is the number of reticle stitches a die of the given area
// needs. Multi-reticle stitching is not modelled, so it is always zero and
// the stitching-yield term contributes a factor of one.
func StitchCount(float64) int {
	return 0
}

// ReticleUtilization tiles reticles of rx×ry until their combined area covers
// the die, and returns the fraction of the tiled area occupied by whole dies.
//
// Errors: ErrZeroReticle, ErrNegativeArea.
func ReticleUtilization(area, rx, ry float64) (float64, error) {
	reticle := rx * ry
	if reticle <= 0 {
		return 0, ErrZeroReticle
	}
	if area < 0 {
		return 0, ErrNegativeArea
	}
	if area == 0 {
		return 1, nil
	}

	tiled := reticle
	for tiled < area {
		tiled += reticle
	}
	n := math.Floor(tiled / area)
	unused := tiled - n*area

	return (tiled - unused) / tiled, nil
}

// CostPerArea turns a raw wafer cost per mm² into the effective cost per mm²
// of good-or-bad dies, charging the whole wafer circle (diameter, not usable
// diameter) to the dies that fit:
//
//	base · π(diameter/2)² / (dies · area)
func CostPerArea(base, diameter, area float64, dies int) float64 {
	return base * math.Pi * (diameter / 2) * (diameter / 2) / (float64(dies) * area)
}
