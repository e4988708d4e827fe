package fabric

import (
	"fmt"
	"math"

	"github.com/katalvlaran/chiplet/matrix"
)

// Link holds the two matrices of one IO type.
type Link struct {
	Type        string
	Adjacency   *matrix.Dense
	Utilization *matrix.Dense
}

type link struct {
	adjacency *matrix.Dense
	traffic   *matrix.Dense // adjacency ∘ utilization
}

// Fabric is the immutable interconnect of a design.
type Fabric struct {
	blocks []string
	index  map[string]int
	types  []string
	links  map[string]link
}

// Empty returns a fabric with no blocks; every die reads zero IO from it.
func Empty() *Fabric {
	f, _ := New(nil)
	return f
}

// New validates blocks and links and returns a Fabric that owns copies of
// the matrices.
//
// Errors: ErrDuplicate, ErrShape, ErrValue.
func New(blocks []string, links ...Link) (*Fabric, error) {
	f := &Fabric{
		blocks: append([]string(nil), blocks...),
		index:  make(map[string]int, len(blocks)),
		links:  make(map[string]link, len(links)),
	}
	for i, b := range blocks {
		if _, dup := f.index[b]; dup {
			return nil, fmt.Errorf("block %q: %w", b, ErrDuplicate)
		}
		f.index[b] = i
	}

	n := len(blocks)
	for _, l := range links {
		if _, dup := f.links[l.Type]; dup {
			return nil, fmt.Errorf("io type %q: %w", l.Type, ErrDuplicate)
		}
		if l.Adjacency == nil || l.Utilization == nil {
			return nil, fmt.Errorf("io type %q: %w", l.Type, ErrShape)
		}
		if matrix.ValidateSquareOf(l.Adjacency, n) != nil || matrix.ValidateSquareOf(l.Utilization, n) != nil {
			return nil, fmt.Errorf("io type %q: %w", l.Type, ErrShape)
		}
		if err := matrix.ValidateRange(l.Adjacency, 0, math.Inf(1)); err != nil {
			return nil, fmt.Errorf("io type %q adjacency: %w: %v", l.Type, ErrValue, err)
		}
		if err := matrix.ValidateRange(l.Utilization, 0, 1); err != nil {
			return nil, fmt.Errorf("io type %q utilization: %w: %v", l.Type, ErrValue, err)
		}
		traffic, err := matrix.Hadamard(l.Adjacency, l.Utilization)
		if err != nil {
			return nil, fmt.Errorf("io type %q: %w", l.Type, err)
		}
		f.types = append(f.types, l.Type)
		f.links[l.Type] = link{adjacency: l.Adjacency.Clone(), traffic: traffic}
	}

	return f, nil
}

// Blocks returns the ordered block names.
func (f *Fabric) Blocks() []string { return append([]string(nil), f.blocks...) }

// Types returns the IO types in the order they were added.
func (f *Fabric) Types() []string { return append([]string(nil), f.types...) }

// Index returns the position of block name, if present.
func (f *Fabric) Index(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// Fanout returns the IO instances of ioType leaving (row sum) and entering
// (column sum) block i.
func (f *Fabric) Fanout(ioType string, i int) (out, in float64) {
	l, ok := f.links[ioType]
	if !ok {
		return 0, 0
	}
	out, _ = l.adjacency.RowSum(i)
	in, _ = l.adjacency.ColSum(i)
	return out, in
}

// Traffic returns the utilization-weighted IO instances of ioType leaving
// and entering block i.
func (f *Fabric) Traffic(ioType string, i int) (out, in float64) {
	l, ok := f.links[ioType]
	if !ok {
		return 0, 0
	}
	out, _ = l.traffic.RowSum(i)
	in, _ = l.traffic.ColSum(i)
	return out, in
}

// Links returns the IO instances of ioType from block i to block j.
func (f *Fabric) Links(ioType string, i, j int) float64 {
	l, ok := f.links[ioType]
	if !ok {
		return 0
	}
	v, _ := l.adjacency.At(i, j)
	return v
}

// Matrices returns copies of the adjacency and utilization-weighted traffic
// matrices of ioType.
func (f *Fabric) Matrices(ioType string) (adjacency, traffic *matrix.Dense, ok bool) {
	l, ok := f.links[ioType]
	if !ok {
		return nil, nil, false
	}
	return l.adjacency.Clone(), l.traffic.Clone(), true
}
