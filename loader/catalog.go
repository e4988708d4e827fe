package loader

import (
	"fmt"

	"github.com/katalvlaran/chiplet/process"
)

// catalogDoc is the shape of a catalog document. Every section is optional.
type catalogDoc struct {
	Wafers     []waferDoc    `yaml:"wafer_processes"`
	IOs        []ioDoc       `yaml:"ios"`
	Layers     []layerDoc    `yaml:"layers"`
	Assemblies []assemblyDoc `yaml:"assembly_processes"`
	Tests      []testDoc     `yaml:"test_processes"`
}

// fields applies optional document values to a record and keeps the first
// setter error.
type fields struct {
	err error
}

func set[T any](f *fields, v *T, apply func(T) error) {
	if f.err != nil || v == nil {
		return
	}
	f.err = apply(*v)
}

type nrePair struct {
	FrontEnd *float64 `yaml:"front_end"`
	BackEnd  *float64 `yaml:"back_end"`
}

type nreDoc struct {
	Memory nrePair `yaml:"memory"`
	Logic  nrePair `yaml:"logic"`
	Analog nrePair `yaml:"analog"`
}

func (n *nreDoc) of(c process.DesignClass) nrePair {
	switch c {
	case process.Memory:
		return n.Memory
	case process.Analog:
		return n.Analog
	}
	return n.Logic
}

type waferDoc struct {
	Name           string   `yaml:"name"`
	Diameter       *float64 `yaml:"wafer_diameter"`
	EdgeExclusion  *float64 `yaml:"edge_exclusion"`
	ProcessYield   *float64 `yaml:"wafer_process_yield"`
	DicingDistance *float64 `yaml:"dicing_distance"`
	ReticleX       *float64 `yaml:"reticle_x"`
	ReticleY       *float64 `yaml:"reticle_y"`
	FillGrid       *bool    `yaml:"wafer_fill_grid"`
	NRE            nreDoc   `yaml:"nre_cost_per_mm2"`
}

func (d *waferDoc) build() (*process.WaferProcess, error) {
	w := process.NewWaferProcess(d.Name)
	var f fields
	// Diameter first: the edge exclusion bound depends on it.
	set(&f, d.Diameter, w.SetDiameter)
	set(&f, d.EdgeExclusion, w.SetEdgeExclusion)
	set(&f, d.ProcessYield, w.SetProcessYield)
	set(&f, d.DicingDistance, w.SetDicingDistance)
	set(&f, d.FillGrid, w.SetFillGrid)
	if d.ReticleX != nil && d.ReticleY != nil && f.err == nil {
		f.err = w.SetReticle(*d.ReticleX, *d.ReticleY)
	}
	for _, c := range process.DesignClasses {
		p := d.NRE.of(c)
		if p.FrontEnd != nil && p.BackEnd != nil && f.err == nil {
			f.err = w.SetNRECost(c, *p.FrontEnd, *p.BackEnd)
		}
	}
	return w, f.err
}

type ioDoc struct {
	Type          string   `yaml:"type"`
	RXArea        *float64 `yaml:"rx_area"`
	TXArea        *float64 `yaml:"tx_area"`
	Shoreline     *float64 `yaml:"shoreline"`
	Bandwidth     *float64 `yaml:"bandwidth"`
	WireCount     *int     `yaml:"wire_count"`
	Bidirectional *bool    `yaml:"bidirectional"`
	EnergyPerBit  *float64 `yaml:"energy_per_bit"`
	Reach         *float64 `yaml:"reach"`
}

func (d *ioDoc) build() (*process.IO, error) {
	io := process.NewIO(d.Type)
	var f fields
	set(&f, d.RXArea, io.SetRXArea)
	set(&f, d.TXArea, io.SetTXArea)
	set(&f, d.Shoreline, io.SetShoreline)
	set(&f, d.Bandwidth, io.SetBandwidth)
	set(&f, d.WireCount, io.SetWireCount)
	set(&f, d.Bidirectional, io.SetBidirectional)
	set(&f, d.EnergyPerBit, io.SetEnergyPerBit)
	set(&f, d.Reach, io.SetReach)
	return io, f.err
}

type layerDoc struct {
	Name              string   `yaml:"name"`
	Active            *bool    `yaml:"active"`
	CostPerMM2        *float64 `yaml:"cost_per_mm2"`
	TransistorDensity *float64 `yaml:"transistor_density"`
	DefectDensity     *float64 `yaml:"defect_density"`
	CriticalAreaRatio *float64 `yaml:"critical_area_ratio"`
	ClusteringFactor  *float64 `yaml:"clustering_factor"`
	LithoPercent      *float64 `yaml:"litho_percent"`
	MaskCost          *float64 `yaml:"mask_cost"`
	StitchingYield    *float64 `yaml:"stitching_yield"`
	RoutingLayerCount *int     `yaml:"routing_layer_count"`
	RoutingLayerPitch *float64 `yaml:"routing_layer_pitch"`
}

func (d *layerDoc) build() (*process.Layer, error) {
	l := process.NewLayer(d.Name)
	var f fields
	set(&f, d.Active, l.SetActive)
	set(&f, d.CostPerMM2, l.SetCostPerMM2)
	set(&f, d.TransistorDensity, l.SetTransistorDensity)
	set(&f, d.DefectDensity, l.SetDefectDensity)
	set(&f, d.CriticalAreaRatio, l.SetCriticalAreaRatio)
	set(&f, d.ClusteringFactor, l.SetClusteringFactor)
	set(&f, d.LithoPercent, l.SetLithoPercent)
	set(&f, d.MaskCost, l.SetMaskCost)
	set(&f, d.StitchingYield, l.SetStitchingYield)
	set(&f, d.RoutingLayerCount, l.SetRoutingLayerCount)
	set(&f, d.RoutingLayerPitch, l.SetRoutingLayerPitch)
	return l, f.err
}

// machineDoc is one time-based assembly step.
type machineDoc struct {
	MachineCost          *float64 `yaml:"machine_cost"`
	MachineLifetime      *float64 `yaml:"machine_lifetime"`
	MachineUptime        *float64 `yaml:"machine_uptime"`
	TechnicianYearlyCost *float64 `yaml:"technician_yearly_cost"`
	Time                 *float64 `yaml:"time"`
	Group                *int     `yaml:"group"`
}

func (m *machineDoc) apply(f *fields, a *process.AssemblyProcess, s process.AssemblyStage) {
	stage := func(fn func(process.AssemblyStage, float64) error) func(float64) error {
		return func(v float64) error { return fn(s, v) }
	}
	set(f, m.MachineCost, stage(a.SetMachineCost))
	set(f, m.MachineLifetime, stage(a.SetMachineLifetime))
	set(f, m.MachineUptime, stage(a.SetMachineUptime))
	set(f, m.TechnicianYearlyCost, stage(a.SetTechnicianYearlyCost))
	set(f, m.Time, stage(a.SetTime))
	set(f, m.Group, func(v int) error { return a.SetGroup(s, v) })
}

type assemblyDoc struct {
	Name                        string     `yaml:"name"`
	MaterialsCostPerMM2         *float64   `yaml:"materials_cost_per_mm2"`
	BlackBoxCostPerSecond       *float64   `yaml:"bb_cost_per_second"`
	PickAndPlace                machineDoc `yaml:"picknplace"`
	Bonding                     machineDoc `yaml:"bonding"`
	DieSeparation               *float64   `yaml:"die_separation"`
	EdgeExclusion               *float64   `yaml:"edge_exclusion"`
	BondingPitch                *float64   `yaml:"bonding_pitch"`
	MaxPadCurrentDensity        *float64   `yaml:"max_pad_current_density"`
	AlignmentYield              *float64   `yaml:"alignment_yield"`
	BondingYield                *float64   `yaml:"bonding_yield"`
	DielectricBondDefectDensity *float64   `yaml:"dielectric_bond_defect_density"`
	TSVArea                     *float64   `yaml:"tsv_area"`
	TSVYield                    *float64   `yaml:"tsv_yield"`
	TSVPitch                    *float64   `yaml:"tsv_pitch"`
}

func (d *assemblyDoc) build() (*process.AssemblyProcess, error) {
	a := process.NewAssemblyProcess(d.Name)
	var f fields
	set(&f, d.MaterialsCostPerMM2, a.SetMaterialsCostPerMM2)
	set(&f, d.BlackBoxCostPerSecond, a.SetBlackBoxCostPerSecond)
	d.PickAndPlace.apply(&f, a, process.PickAndPlace)
	d.Bonding.apply(&f, a, process.Bonding)
	set(&f, d.DieSeparation, a.SetDieSeparation)
	set(&f, d.EdgeExclusion, a.SetEdgeExclusion)
	set(&f, d.BondingPitch, a.SetBondingPitch)
	set(&f, d.MaxPadCurrentDensity, a.SetMaxPadCurrentDensity)
	set(&f, d.AlignmentYield, a.SetAlignmentYield)
	set(&f, d.BondingYield, a.SetBondingYield)
	set(&f, d.DielectricBondDefectDensity, a.SetDielectricBondDefectDensity)
	set(&f, d.TSVArea, a.SetTSVArea)
	set(&f, d.TSVYield, a.SetTSVYield)
	set(&f, d.TSVPitch, a.SetTSVPitch)
	return a, f.err
}

// stageDoc is one test stage, self or assembly.
type stageDoc struct {
	Enabled              *bool    `yaml:"enabled"`
	BlackBoxPatternCount *float64 `yaml:"bb_pattern_count"`
	BlackBoxScanChainLen *float64 `yaml:"bb_scan_chain_length"`
	DefectCoverage       *float64 `yaml:"defect_coverage"`
	TestReuse            *int     `yaml:"test_reuse"`
	NumScanChains        *int     `yaml:"num_scan_chains"`
	NumIOPerScanChain    *int     `yaml:"num_io_per_scan_chain"`
	NumTestIOOffset      *int     `yaml:"num_test_io_offset"`
	FailureDistribution  *string  `yaml:"test_failure_dist"`
}

func (sd *stageDoc) apply(f *fields, t *process.TestProcess, s process.TestStage) {
	num := func(fn func(process.TestStage, float64) error) func(float64) error {
		return func(v float64) error { return fn(s, v) }
	}
	integer := func(fn func(process.TestStage, int) error) func(int) error {
		return func(v int) error { return fn(s, v) }
	}
	set(f, sd.Enabled, func(v bool) error { return t.SetEnabled(s, v) })
	set(f, sd.BlackBoxPatternCount, num(t.SetBlackBoxPatternCount))
	set(f, sd.BlackBoxScanChainLen, num(t.SetBlackBoxScanChainLength))
	set(f, sd.DefectCoverage, num(t.SetDefectCoverage))
	set(f, sd.TestReuse, integer(t.SetTestReuse))
	set(f, sd.NumScanChains, integer(t.SetNumScanChains))
	set(f, sd.NumIOPerScanChain, integer(t.SetNumIOPerScanChain))
	set(f, sd.NumTestIOOffset, integer(t.SetNumTestIOOffset))
	set(f, sd.FailureDistribution, func(v string) error { return t.SetFailureDistribution(s, v) })
}

type testDoc struct {
	Name             string   `yaml:"name"`
	TimePerTestCycle *float64 `yaml:"time_per_test_cycle"`
	CostPerSecond    *float64 `yaml:"cost_per_second"`
	SamplesPerInput  *int     `yaml:"samples_per_input"`
	Self             stageDoc `yaml:"self"`
	Assembly         stageDoc `yaml:"assembly"`
}

func (d *testDoc) build() (*process.TestProcess, error) {
	t := process.NewTestProcess(d.Name)
	var f fields
	set(&f, d.TimePerTestCycle, t.SetTimePerTestCycle)
	set(&f, d.CostPerSecond, t.SetCostPerSecond)
	set(&f, d.SamplesPerInput, t.SetSamplesPerInput)
	d.Self.apply(&f, t, process.SelfTest)
	d.Assembly.apply(&f, t, process.AssemblyTest)
	return t, f.err
}

// record is what every built process record offers the merge step.
type record interface {
	Finalize() error
}

// finish finalizes r and logs an incomplete record before failing.
func (o *options) finish(path, kind, name string, r record) error {
	err := r.Finalize()
	if process.IsIncomplete(err) {
		o.logger.Warn("incomplete record", "path", path, "kind", kind, "name", name, "error", err)
	}
	return err
}

// addRecords builds, finalizes and adds every entry of one section.
func addRecords[D any, R record](o *options, path, kind string, docs []D,
	name func(*D) string, build func(*D) (R, error), add func(R) error) error {
	for i := range docs {
		d := &docs[i]
		n := name(d)
		if n == "" {
			return docErrorf(path, fmt.Sprintf("%s[%d]", kind, i), fmt.Errorf("%w: name", ErrRequired))
		}
		r, err := build(d)
		if err != nil {
			return docErrorf(path, kind, err)
		}
		if err := o.finish(path, kind, n, r); err != nil {
			return docErrorf(path, kind, err)
		}
		if err := add(r); err != nil {
			return docErrorf(path, kind, err)
		}
	}
	return nil
}

func (c *catalogDoc) addTo(b *process.CatalogBuilder, path string, o *options) error {
	if err := addRecords(o, path, SectionWafers, c.Wafers,
		func(d *waferDoc) string { return d.Name }, (*waferDoc).build, b.AddWaferProcess); err != nil {
		return err
	}
	if err := addRecords(o, path, SectionIOs, c.IOs,
		func(d *ioDoc) string { return d.Type }, (*ioDoc).build, b.AddIO); err != nil {
		return err
	}
	if err := addRecords(o, path, SectionLayers, c.Layers,
		func(d *layerDoc) string { return d.Name }, (*layerDoc).build, b.AddLayer); err != nil {
		return err
	}
	if err := addRecords(o, path, SectionAssemblies, c.Assemblies,
		func(d *assemblyDoc) string { return d.Name }, (*assemblyDoc).build, b.AddAssemblyProcess); err != nil {
		return err
	}
	return addRecords(o, path, SectionTests, c.Tests,
		func(d *testDoc) string { return d.Name }, (*testDoc).build, b.AddTestProcess)
}
