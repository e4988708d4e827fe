package fabric

import (
	"fmt"
	"math"

	"github.com/katalvlaran/chiplet/matrix"
	"github.com/katalvlaran/chiplet/process"
)

// IOLookup resolves IO type tags. *process.Catalog satisfies it.
type IOLookup interface {
	IO(ioType string) (*process.IO, error)
}

// Net is one netlist entry: a bandwidth demand of a given IO type between two blocks.
type Net struct {
	Type   string
	Block0 string
	Block1 string
	// Bandwidth demand in the same unit as the IO bandwidth.
	Bandwidth float64
	// AverageUtilization of the demanded bandwidth, in [0,1].
	AverageUtilization float64
	// Count forces the number of IO instances; nil derives it from bandwidth.
	Count *int
}

// Builder accumulates nets into a Fabric.
type Builder struct {
	ios    IOLookup
	blocks []string
	index  map[string]int
	types  []string
	adj    map[string]*matrix.Dense
	util   map[string]*matrix.Dense
}

// NewBuilder returns an empty builder resolving IO types through ios.
func NewBuilder(ios IOLookup) *Builder {
	return &Builder{
		ios:   ios,
		index: make(map[string]int),
		adj:   make(map[string]*matrix.Dense),
		util:  make(map[string]*matrix.Dense),
	}
}

// AddNet merges one net into the fabric:
//
//  1. Unseen blocks are appended and every matrix grows by one.
//  2. ios = Count, or ⌈Bandwidth/io.Bandwidth⌉.
//  3. util = AverageUtilization · Bandwidth/(ios·io.Bandwidth) (factor 1 for zero ios).
//  4. The utilization cell becomes util if empty, else the ios-weighted mean;
//     the adjacency cell grows by ios. Bidirectional types update both directions.
func (b *Builder) AddNet(n Net) error {
	io, err := b.ios.IO(n.Type)
	if err != nil {
		return fmt.Errorf("net %s-%s: %w", n.Block0, n.Block1, err)
	}
	if err := b.checkNet(n, io); err != nil {
		return err
	}

	if _, ok := b.adj[n.Type]; !ok {
		size := len(b.blocks)
		adj, err := matrix.NewSquare(size)
		if err != nil {
			return err
		}
		util, err := matrix.NewSquare(size)
		if err != nil {
			return err
		}
		b.adj[n.Type], b.util[n.Type] = adj, util
		b.types = append(b.types, n.Type)
	}
	for _, name := range []string{n.Block0, n.Block1} {
		if err := b.addBlock(name); err != nil {
			return err
		}
	}

	var ios float64
	if n.Count != nil {
		ios = float64(*n.Count)
	} else {
		ios = math.Ceil(n.Bandwidth / io.Bandwidth())
	}
	util := n.AverageUtilization
	if ios != 0 {
		util *= n.Bandwidth / (ios * io.Bandwidth())
	}
	if util > 1 {
		return fmt.Errorf("net %s-%s: %w: utilization %g exceeds 1 for %g instances", n.Block0, n.Block1, ErrNet, util, ios)
	}

	i, j := b.index[n.Block0], b.index[n.Block1]
	if err := b.merge(n.Type, i, j, ios, util); err != nil {
		return fmt.Errorf("net %s-%s: %w", n.Block0, n.Block1, err)
	}
	if io.Bidirectional() {
		if err := b.merge(n.Type, j, i, ios, util); err != nil {
			return fmt.Errorf("net %s-%s: %w", n.Block1, n.Block0, err)
		}
	}
	return nil
}

func (b *Builder) checkNet(n Net, io *process.IO) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("net %s-%s: %w: %s", n.Block0, n.Block1, ErrNet, fmt.Sprintf(format, args...))
	}
	switch {
	case n.Block0 == "" || n.Block1 == "":
		return bad("empty block name")
	case math.IsNaN(n.Bandwidth) || math.IsInf(n.Bandwidth, 0) || n.Bandwidth < 0:
		return bad("bandwidth %g", n.Bandwidth)
	case !(n.AverageUtilization >= 0 && n.AverageUtilization <= 1):
		return bad("average utilization %g not in [0,1]", n.AverageUtilization)
	case n.Count != nil && *n.Count < 0:
		return bad("count %d", *n.Count)
	case n.Count == nil && io.Bandwidth() == 0:
		return bad("io type %q has zero bandwidth and no explicit count", n.Type)
	}
	return nil
}

func (b *Builder) addBlock(name string) error {
	if _, ok := b.index[name]; ok {
		return nil
	}
	b.index[name] = len(b.blocks)
	b.blocks = append(b.blocks, name)
	for _, t := range b.types {
		var err error
		if b.adj[t], err = b.adj[t].Grow(1); err != nil {
			return err
		}
		if b.util[t], err = b.util[t].Grow(1); err != nil {
			return err
		}
	}
	return nil
}

// merge folds ios instances at util into cell (i, j) of one IO type.
func (b *Builder) merge(ioType string, i, j int, ios, util float64) error {
	adj, u := b.adj[ioType], b.util[ioType]
	prevCount, err := adj.At(i, j)
	if err != nil {
		return err
	}
	prevUtil, err := u.At(i, j)
	if err != nil {
		return err
	}
	if prevUtil != 0 && prevCount+ios != 0 {
		util = (prevUtil*prevCount + util*ios) / (prevCount + ios)
	}
	if err := u.Set(i, j, util); err != nil {
		return err
	}
	return adj.Add(i, j, ios)
}

// Build validates the accumulated matrices and returns the Fabric.
func (b *Builder) Build() (*Fabric, error) {
	links := make([]Link, 0, len(b.types))
	for _, t := range b.types {
		links = append(links, Link{Type: t, Adjacency: b.adj[t], Utilization: b.util[t]})
	}
	return New(b.blocks, links...)
}
