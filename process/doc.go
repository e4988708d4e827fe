// Package process holds the fabrication, interconnect, assembly and test
// records that a die tree refers to by name.
//
// Every record follows the same lifecycle:
//
//  1. Create with New*(name) and assign fields through setters. Each setter
//     validates its value and fails with an error naming the record and
//     field; nothing is coerced silently.
//  2. Call Finalize. It fails with ErrMissingField if a required field was
//     never assigned. After it succeeds every setter returns ErrFinalized.
//  3. Add finalized records to a CatalogBuilder and Build an immutable
//     Catalog, shared read-only by every tree built from it.
//
// The records also carry the models that only need their own parameters:
// layer yield and cost, assembly cost and yield, and the test-stage yield,
// quality, cost and pin-count heuristics.
package process
