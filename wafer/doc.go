// Package wafer estimates how many rectangular dies fit on a circular wafer
// and how defects and reticle tiling degrade the resulting per-die economics.
//
// Two fill disciplines are provided:
//
//	Grid   — dies in rows whose left edges align across rows. Every left-column
//	         height up to a crossover is tried; the best count wins.
//	NoGrid — each row is packed independently along its chord. Two cases are
//	         tried: a row centred on the horizontal diameter, and a pair of rows
//	         straddling it.
//
// Both are approximations, not exact packers. Neither dominates the other for
// every aspect ratio.
//
// Yield follows the negative-binomial model
//
//	Y = (1 + D·A·car/α)^(−α) · stitchingYield^stitches
//
// where the stitch count is fixed at zero (single-reticle assumption).
//
// All lengths are in mm and areas in mm².
package wafer
