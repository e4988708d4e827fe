// Package chiplet estimates manufacturing cost, yield, silicon area and power
// for hierarchical multi-die ("chiplet") assemblies.
//
// 🚀 What is chiplet?
//
//	A pure-Go model for packaging and partitioning trade-offs:
//		• Process catalogs: wafer, IO, layer, assembly and test records
//		• Wafer packing: grid and line-fill dies-per-wafer, reticle utilization
//		• Interconnect fabric: per-IO-type adjacency & utilization matrices
//		• Die engine: post-order area/yield/cost/power aggregation
//		• Loader & sweep: YAML inputs and one-at-a-time sensitivity analysis
//
// Under the hood, everything is organized under flat subpackages:
//
//	matrix/  — row-major Dense storage, reductions and validators
//	wafer/   — die-per-wafer geometry, reticle utilization, layer yield
//	process/ — catalog records, Catalog lookups, assembly & test models
//	fabric/  — interconnect fabric and its netlist builder
//	die/     — die tree construction and the aggregation engine
//	loader/  — YAML documents for catalogs, netlist and design
//	sweep/   — sensitivity harness with Prometheus metrics
//	config/  — CLI configuration file
//
// The root package only carries the error taxonomy shared by all of them:
// ErrConfiguration for malformed or unresolved inputs and ErrCalculation for
// physically nonsensical ones.
//
// Quick ASCII example of a two-level stack:
//
//	  ┌──────┐ ┌──────┐
//	  │ cpu  │ │ hbm  │   face children
//	┌─┴──────┴─┴──────┴─┐
//	│    interposer     │   root die
//	└───────────────────┘
//
//	go run ./cmd/chipletcost eval io.yaml layers.yaml wafers.yaml \
//	    assembly.yaml test.yaml netlist.yaml design.yaml
package chiplet
