// Package loader reads the YAML documents that describe a chiplet design:
// process catalogs, the netlist and the die tree.
//
// A catalog document holds any of the sections wafer_processes, ios,
// layers, assembly_processes and test_processes. Every record in every
// catalog document of a load is merged into one process.Catalog; a name
// defined twice is a configuration error. The netlist document holds a
// single nets list, and the design document a single root chip with its
// stacked dies nested under chips.
//
// Loading happens in two steps. Read parses each file into a yaml.Node tree
// and keeps the trees in a Documents value; Decode turns the trees into the
// immutable inputs of die.Build. Keeping the trees lets a caller perturb
// single scalars and decode again without touching the disk.
//
//	docs, err := loader.Read(files)
//	in, err := docs.Decode(loader.WithLogger(log))
//	root, err := die.Build(in.Spec, in.Catalog, in.Fabric)
package loader
