// Package fabric holds the global interconnect fabric of a design: an ordered
// list of block names shared by every IO type, and for each IO type one
// adjacency matrix (IO instance counts, [from][to]) and one utilization matrix
// (average bandwidth utilization in [0,1] of those instances).
//
// A Fabric is read-only once built. Dies read it through three views:
//
//	Fanout  — row and column sums of the adjacency matrix
//	Traffic — row and column sums of adjacency ∘ utilization
//	Links   — a single adjacency entry
//
// Builder derives a Fabric from a netlist, growing every matrix whenever a net
// names a block for the first time.
package fabric
