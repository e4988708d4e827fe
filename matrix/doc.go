// Package matrix provides the small dense linear-algebra surface the chiplet
// model needs: a row-major float64 Dense matrix with bounds-checked access,
// row and column reductions, element-wise products and square growth.
//
// The interconnect fabric stores one adjacency matrix and one utilization
// matrix per IO type as Dense values; every die in a tree reads them through
// the reductions defined here.
//
// Error policy:
//
//   - Public indexers (At/Set) never panic; they return ErrOutOfRange.
//   - Shape problems return ErrBadShape or ErrDimensionMismatch.
//   - Validators return sentinels tagged with the validator name, so callers
//     match them with errors.Is.
//
// Determinism: all loops run in fixed i→j order over the flat buffer.
package matrix
