package loader

import (
	"github.com/katalvlaran/chiplet/die"
	"github.com/katalvlaran/chiplet/fabric"
	"github.com/katalvlaran/chiplet/process"
)

// Inputs are the decoded, immutable inputs of one die.Build call.
type Inputs struct {
	Catalog *process.Catalog
	Fabric  *fabric.Fabric
	Spec    die.Spec
}

// Build evaluates the design.
func (in *Inputs) Build(opts ...die.Option) (*die.Die, error) {
	return die.Build(in.Spec, in.Catalog, in.Fabric, opts...)
}

// Decode turns the parsed documents into Inputs. Catalog records are merged
// in document order, then the netlist is built against the catalog.
func (d *Documents) Decode(opts ...Option) (*Inputs, error) {
	o := newOptions(opts)

	var b process.CatalogBuilder
	for _, doc := range d.Catalogs {
		var c catalogDoc
		if err := doc.decode(&c); err != nil {
			return nil, err
		}
		if err := c.addTo(&b, doc.Path, &o); err != nil {
			return nil, err
		}
	}
	cat := b.Build()

	var nl netlistDoc
	if err := d.Netlist.decode(&nl); err != nil {
		return nil, err
	}
	fab, err := nl.fabric(d.Netlist.Path, cat)
	if err != nil {
		return nil, err
	}

	var dd designDoc
	if err := d.Design.decode(&dd); err != nil {
		return nil, err
	}
	if dd.Chip == nil {
		return nil, docErrorf(d.Design.Path, "chip", ErrRequired)
	}
	spec, err := dd.Chip.spec("chip")
	if err != nil {
		return nil, docErrorf(d.Design.Path, "design", err)
	}

	return &Inputs{Catalog: cat, Fabric: fab, Spec: spec}, nil
}

// Load reads and decodes files in one step.
func Load(files Files, opts ...Option) (*Inputs, error) {
	docs, err := Read(files)
	if err != nil {
		return nil, err
	}
	return docs.Decode(opts...)
}
