// Package sweep measures how sensitive the total cost of a design is to each
// numeric input.
//
// Run evaluates the design once for a base cost, then runs one trial per
// target scalar. A trial deep-copies the parsed documents, scales one scalar
// by (1 + p/100), decodes and rebuilds the die tree, and reads the root's
// TotalCost. When the scaled value is rejected by field validation, or an
// integer scalar does not change after truncation, the trial retries with
// (1 − p/100). Relative sensitivity is
//
//	(perturbed − base) / (base · p/100)
//
// negated for a decrease, so a positive sensitivity always means cost grows
// with the parameter.
//
// Targets are every numeric scalar in the netlist and design documents and
// in the catalog records the design references. Alias nodes are not targets;
// the anchored original is.
//
// Trials run concurrently up to WithWorkers and each works on its own copy,
// so the report does not depend on the worker count. Trial counts and
// durations are recorded in Prometheus collectors registered with
// WithRegisterer.
package sweep
