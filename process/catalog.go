package process

import (
	"fmt"
	"sort"
)

// finalizer is satisfied by every record type.
type finalizer interface {
	Name() string
	Finalized() bool
}

// Catalog is an immutable, name-keyed set of finalized records. It is safe
// for concurrent reads.
type Catalog struct {
	wafers     map[string]*WaferProcess
	ios        map[string]*IO
	layers     map[string]*Layer
	assemblies map[string]*AssemblyProcess
	tests      map[string]*TestProcess
}

// CatalogBuilder collects records for a Catalog. The zero value is ready to use.
type CatalogBuilder struct {
	c Catalog
}

func add[T finalizer](m *map[string]T, kind string, r T) error {
	if !r.Finalized() {
		return fmt.Errorf("%s %q: %w", kind, r.Name(), ErrNotFinalized)
	}
	if *m == nil {
		*m = make(map[string]T)
	}
	if _, dup := (*m)[r.Name()]; dup {
		return fmt.Errorf("%s %q: %w", kind, r.Name(), ErrDuplicateName)
	}
	(*m)[r.Name()] = r
	return nil
}

func (b *CatalogBuilder) AddWaferProcess(w *WaferProcess) error {
	return add(&b.c.wafers, "wafer_process", w)
}

func (b *CatalogBuilder) AddIO(io *IO) error {
	return add(&b.c.ios, "io", io)
}

func (b *CatalogBuilder) AddLayer(l *Layer) error {
	return add(&b.c.layers, "layer", l)
}

func (b *CatalogBuilder) AddAssemblyProcess(a *AssemblyProcess) error {
	return add(&b.c.assemblies, "assembly_process", a)
}

func (b *CatalogBuilder) AddTestProcess(t *TestProcess) error {
	return add(&b.c.tests, "test_process", t)
}

// Build returns the catalog. The builder must not be reused afterwards.
func (b *CatalogBuilder) Build() *Catalog {
	c := b.c
	b.c = Catalog{}
	return &c
}

func lookup[T any](m map[string]T, kind, name string) (T, error) {
	r, ok := m[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", kind, name, ErrUnknownName)
	}
	return r, nil
}

func (c *Catalog) WaferProcess(name string) (*WaferProcess, error) {
	return lookup(c.wafers, "wafer_process", name)
}

// IO looks an IO record up by its type tag.
func (c *Catalog) IO(ioType string) (*IO, error) {
	return lookup(c.ios, "io", ioType)
}

func (c *Catalog) Layer(name string) (*Layer, error) {
	return lookup(c.layers, "layer", name)
}

func (c *Catalog) AssemblyProcess(name string) (*AssemblyProcess, error) {
	return lookup(c.assemblies, "assembly_process", name)
}

func (c *Catalog) TestProcess(name string) (*TestProcess, error) {
	return lookup(c.tests, "test_process", name)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IOTypes returns every IO type tag in sorted order.
func (c *Catalog) IOTypes() []string { return sortedKeys(c.ios) }

// LayerNames returns every layer name in sorted order.
func (c *Catalog) LayerNames() []string { return sortedKeys(c.layers) }
