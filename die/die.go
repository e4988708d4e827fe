package die

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/chiplet/fabric"
	"github.com/katalvlaran/chiplet/process"
)

// Die is one evaluated node of a design tree. It has no mutators; every
// derived value is computed once by Build.
type Die struct {
	spec   Spec
	parent *Die // non-owning; nil for the root
	face   []*Die
	back   []*Die

	wafer    *process.WaferProcess
	assembly *process.AssemblyProcess
	test     *process.TestProcess
	stackup  []*process.Layer

	env      *env
	block    int
	inFabric bool

	stackPower float64
	ioPower    float64
	totalPower Quantity
	nreDesign  float64

	ioArea      float64
	tsvArea     float64
	padArea     float64
	stackedArea float64
	facePads    float64
	backPads    float64
	area        Quantity

	selfTrueYield float64
	selfTestYield float64
	selfQuality   Quantity
	chipTrueYield float64
	chipTestYield float64
	quality       float64

	layerCost        float64
	selfTestCost     float64
	selfCost         Quantity
	assemblyCost     float64
	assemblyTestCost float64
	cost             float64
}

// env is shared, read-only state for one Build call.
type env struct {
	catalog *process.Catalog
	fabric  *fabric.Fabric
	blocks  []string
	types   []string
	ios     map[string]*process.IO
	opts    options
}

// Build evaluates spec and everything stacked on it against catalog and fab.
// A nil fab is treated as an empty fabric. Every IO type in fab must be
// present in catalog.
func Build(spec Spec, catalog *process.Catalog, fab *fabric.Fabric, opts ...Option) (*Die, error) {
	if catalog == nil {
		return nil, fmt.Errorf("die: %w: nil catalog", ErrParameter)
	}
	if fab == nil {
		fab = fabric.Empty()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &env{
		catalog: catalog,
		fabric:  fab,
		blocks:  fab.Blocks(),
		types:   fab.Types(),
		ios:     make(map[string]*process.IO),
		opts:    o,
	}
	for _, t := range e.types {
		io, err := catalog.IO(t)
		if err != nil {
			return nil, fmt.Errorf("die: fabric: %w", err)
		}
		e.ios[t] = io
	}

	return e.build(spec, nil)
}

func (e *env) build(spec Spec, parent *Die) (*Die, error) {
	if err := spec.check(); err != nil {
		return nil, err
	}
	if spec.AspectRatio == 0 {
		spec.AspectRatio = 1
	}

	d := &Die{spec: spec, parent: parent, env: e}
	d.spec.Face, d.spec.Back = nil, nil
	if err := d.resolve(); err != nil {
		return nil, err
	}
	d.block, d.inFabric = e.fabric.Index(spec.Name)

	face, copiedFace, err := resolveCopies(spec.Face, nil, Face)
	if err != nil {
		return nil, err
	}
	back, copiedBack, err := resolveCopies(spec.Back, face, Back)
	if err != nil {
		return nil, err
	}
	for _, name := range append(copiedFace, copiedBack...) {
		e.opts.logger.Warn("copy_from is experimental", "die", name, "parent", spec.Name)
	}

	if d.face, err = e.buildChildren(face, d); err != nil {
		return nil, err
	}
	if d.back, err = e.buildChildren(back, d); err != nil {
		return nil, err
	}
	if err := d.compute(); err != nil {
		return nil, err
	}
	if parent != nil {
		d.checkRouting()
	}

	return d, nil
}

// resolve looks up the processes and expands the stackup.
func (d *Die) resolve() error {
	c := d.env.catalog
	var err error
	if d.wafer, err = c.WaferProcess(d.spec.WaferProcess); err != nil {
		return d.errorf("wafer_process", err)
	}
	if d.assembly, err = c.AssemblyProcess(d.spec.AssemblyProcess); err != nil {
		return d.errorf("assembly_process", err)
	}
	if d.test, err = c.TestProcess(d.spec.TestProcess); err != nil {
		return d.errorf("test_process", err)
	}
	for _, entry := range d.spec.Stackup {
		l, err := c.Layer(entry.Layer)
		if err != nil {
			return d.errorf("stackup", err)
		}
		for i := 0; i < entry.Count; i++ {
			d.stackup = append(d.stackup, l)
		}
	}
	return nil
}

// buildChildren builds one side's children, concurrently when configured.
// Results keep the order of specs.
func (e *env) buildChildren(specs []Spec, parent *Die) ([]*Die, error) {
	out := make([]*Die, len(specs))
	if e.opts.parallelism == 1 || len(specs) < 2 {
		for i := range specs {
			d, err := e.build(specs[i], parent)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(e.opts.parallelism)
	for i := range specs {
		i := i
		g.Go(func() error {
			d, err := e.build(specs[i], parent)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// checkRouting warns when the parent's routing layers under this die offer
// fewer tracks than the die needs escape wires. Advisory only.
func (d *Die) checkRouting() {
	var tracks float64
	for _, l := range d.parent.stackup {
		tracks += l.RoutingTracks(d.area.Value(), d.spec.AspectRatio)
	}
	signals, _ := d.signalCount(d.chipList())
	escape := signals + d.test.NumTestIOs()
	if tracks < escape {
		d.env.opts.logger.Warn("insufficient escape routing tracks on parent",
			"die", d.spec.Name,
			"parent", d.parent.spec.Name,
			"tracks", tracks,
			"required", escape)
	}
}

// Name returns the die name.
func (d *Die) Name() string { return d.spec.Name }

// Spec returns the parameters the die was built from, without children.
func (d *Die) Spec() Spec { return d.spec }

// Parent returns the die this one is stacked on, or nil for the root.
func (d *Die) Parent() *Die { return d.parent }

// Face returns the dies stacked on the face.
func (d *Die) Face() []*Die { return append([]*Die(nil), d.face...) }

// Back returns the dies stacked on the back.
func (d *Die) Back() []*Die { return append([]*Die(nil), d.back...) }

// Children returns face children followed by back children.
func (d *Die) Children() []*Die {
	out := make([]*Die, 0, len(d.face)+len(d.back))
	out = append(out, d.face...)
	return append(out, d.back...)
}

// WaferProcess returns the process the die is fabricated on.
func (d *Die) WaferProcess() *process.WaferProcess { return d.wafer }

// AssemblyProcess returns the process that bonds the children to this die.
func (d *Die) AssemblyProcess() *process.AssemblyProcess { return d.assembly }

// TestProcess returns the process used for self and assembly test.
func (d *Die) TestProcess() *process.TestProcess { return d.test }

// Stackup returns the expanded layer list, one entry per physical layer.
func (d *Die) Stackup() []*process.Layer { return append([]*process.Layer(nil), d.stackup...) }

// StackPower is the total power of the children, in watts.
func (d *Die) StackPower() float64 { return d.stackPower }

// IOPower is the power drawn by the die's signal IO, in watts.
func (d *Die) IOPower() float64 { return d.ioPower }

// TotalPower is core, IO and stack power, or the black-box power plus stack power.
func (d *Die) TotalPower() float64 { return d.totalPower.Value() }

// NREDesignCost is the front- and back-end design cost of the core area.
func (d *Die) NREDesignCost() float64 { return d.nreDesign }

// Area is the die footprint in mm², or the black-box area.
func (d *Die) Area() float64 { return d.area.Value() }

// IOArea is the area of the TX and RX cells.
func (d *Die) IOArea() float64 { return d.ioArea }

// TSVArea is the area taken by through-silicon vias.
func (d *Die) TSVArea() float64 { return d.tsvArea }

// PadArea is the area of the bond pad grid.
func (d *Die) PadArea() float64 { return d.padArea }

// StackedDieArea is the footprint needed by the larger stacked side.
func (d *Die) StackedDieArea() float64 { return d.stackedArea }

// FacePadCount is the number of pads on the active face.
func (d *Die) FacePadCount() float64 { return d.facePads }

// BackPadCount is the number of pads on the substrate side.
func (d *Die) BackPadCount() float64 { return d.backPads }

// TSVCount is the number of pads crossing the die substrate.
func (d *Die) TSVCount() float64 { return d.backPads }

// SelfTrueYield is the fraction of bare dies that are good.
func (d *Die) SelfTrueYield() float64 { return d.selfTrueYield }

// SelfTestYield is the fraction of bare dies that pass self test.
func (d *Die) SelfTestYield() float64 { return d.selfTestYield }

// SelfQuality is the fraction of passing bare dies that are good, or the black-box quality.
func (d *Die) SelfQuality() float64 { return d.selfQuality.Value() }

// ChipTrueYield is the fraction of assemblies that are good.
func (d *Die) ChipTrueYield() float64 { return d.chipTrueYield }

// ChipTestYield is the fraction of assemblies that pass assembly test.
func (d *Die) ChipTestYield() float64 { return d.chipTestYield }

// Quality is the fraction of passing assemblies that are good.
func (d *Die) Quality() float64 { return d.quality }

// SelfCost is the cost of one good bare die after self test.
func (d *Die) SelfCost() float64 { return d.selfCost.Value() }

// Cost is the cost of one good assembly, excluding NRE.
func (d *Die) Cost() float64 { return d.cost }

// Overrides reports which quantities came from black-box parameters.
type Overrides struct {
	Area, Cost, Quality, Power bool
}

// Overrides reports which of the die's quantities were replaced.
func (d *Die) Overrides() Overrides {
	return Overrides{
		Area:    d.area.IsOverridden(),
		Cost:    d.selfCost.IsOverridden(),
		Quality: d.selfQuality.IsOverridden(),
		Power:   d.totalPower.IsOverridden(),
	}
}
