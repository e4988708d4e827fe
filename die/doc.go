// Package die is the hierarchical die model and its aggregation engine.
//
// A design is a tree of dies. Every node names a wafer process, an assembly
// process, a test process and a layer stackup from a process.Catalog, and may
// carry dies stacked on its face and on its back. Build turns a declarative
// Spec tree into an immutable *Die tree in a single post-order pass: the
// children of a node are finished before the node runs its own fixed
// sequence:
//
//  1. stack power    Σ total power of the children
//  2. IO power       utilization-weighted fabric traffic × bandwidth × energy/bit
//  3. total power    core + IO + stack, or the black-box power + stack
//  4. NRE design     core area × Σ fraction × (front-end + back-end cost/mm²)
//  5. area           max(stacked dies, pad grid, core + IO + TSV), or black-box
//  6. self yield     Π layer yield over core + IO area
//  7. self test      test yield and quality, quality forced by a black-box value
//  8. chip yield     self quality × Π child quality × assembly yield × process yield
//  9. chip test      assembled test yield and quality
//  10. self cost     (layer cost + self test cost)/self test yield, or black-box
//  11. cost          (self + children + assembly + assembly test)/chip test yield
//
// A zero test yield in step 10 or 11 makes the cost +Inf rather than failing;
// IsInfiniteCost reports it and roll-ups propagate it.
//
// Pad area is the subtle part of step 5. Signal pads are bucketed by the reach
// of their IO type; buckets are placed from the shortest reach outward, each
// within a band of (reach − die separation) along the die edges, growing the
// die when a band is full. The total pad count then has to fit on a uniform
// grid at the effective bonding pitch.
//
// Options:
//
//   - WithLogger routes advisory warnings (escape-routing congestion and the
//     experimental CopyFrom feature) to a *slog.Logger.
//   - WithParallelism builds the siblings of each node concurrently.
//
// Errors match chiplet.ErrConfiguration (bad parameters, unknown names) or
// chiplet.ErrCalculation (nonsensical geometry) through errors.Is.
package die
