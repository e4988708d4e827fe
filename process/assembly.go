package process

import (
	"fmt"
	"math"
)

// AssemblyStage selects one of the two time-based assembly steps.
type AssemblyStage int

const (
	PickAndPlace AssemblyStage = iota
	Bonding
)

func (s AssemblyStage) prefix() string {
	if s == Bonding {
		return "bonding"
	}
	return "picknplace"
}

// secondsPerYear converts yearly costs to cost per second.
const secondsPerYear = 365 * 24 * 3600

// stageParams holds the machine, labour and throughput figures of one stage.
type stageParams struct {
	machineCost     float64
	machineLifetime float64
	machineUptime   float64
	technicianCost  float64
	time            float64
	group           int
}

// AssemblyProcess describes how dies are placed, bonded and stacked.
type AssemblyProcess struct {
	record
	materialsCostPerMM2 float64
	bbCostPerSecond     optional
	stages              [2]stageParams
	dieSeparation       float64
	edgeExclusion       float64
	bondingPitch        float64
	maxPadCurrent       float64
	alignmentYield      float64
	bondingYield        float64
	dielectricDD        float64
	tsvArea             float64
	tsvYield            float64
	tsvPitch            float64
}

// NewAssemblyProcess returns an empty, mutable assembly process. Optional TSV
// parameters start at area 0, yield 1 and pitch 0 (no TSV effect).
func NewAssemblyProcess(name string) *AssemblyProcess {
	a := &AssemblyProcess{record: newRecord("assembly_process", name), tsvYield: 1}
	a.stages[PickAndPlace].group = 1
	a.stages[Bonding].group = 1
	return a
}

func (a *AssemblyProcess) SetMaterialsCostPerMM2(v float64) error {
	return a.assign("materials_cost_per_mm2", nonNegative(v), func() { a.materialsCostPerMM2 = v })
}

// SetBlackBoxCostPerSecond overrides the machine and technician derived cost
// per second of both stages.
func (a *AssemblyProcess) SetBlackBoxCostPerSecond(v float64) error {
	return a.assign("bb_cost_per_second", nonNegative(v), func() { a.bbCostPerSecond = optional{v: v, ok: true} })
}

func (a *AssemblyProcess) SetMachineCost(s AssemblyStage, v float64) error {
	return a.assign(s.prefix()+"_machine_cost", nonNegative(v), func() { a.stages[s].machineCost = v })
}

// SetMachineLifetime sets the machine depreciation period in years.
func (a *AssemblyProcess) SetMachineLifetime(s AssemblyStage, v float64) error {
	return a.assign(s.prefix()+"_machine_lifetime", nonNegative(v), func() { a.stages[s].machineLifetime = v })
}

// SetMachineUptime sets the machine utilization in [0,1].
func (a *AssemblyProcess) SetMachineUptime(s AssemblyStage, v float64) error {
	return a.assign(s.prefix()+"_machine_uptime", unitInterval(v), func() { a.stages[s].machineUptime = v })
}

func (a *AssemblyProcess) SetTechnicianYearlyCost(s AssemblyStage, v float64) error {
	return a.assign(s.prefix()+"_technician_yearly_cost", nonNegative(v), func() { a.stages[s].technicianCost = v })
}

// SetTime sets the seconds one step of the stage takes.
func (a *AssemblyProcess) SetTime(s AssemblyStage, v float64) error {
	return a.assign(s.prefix()+"_time", nonNegative(v), func() { a.stages[s].time = v })
}

// SetGroup sets how many dies one step handles at once.
func (a *AssemblyProcess) SetGroup(s AssemblyStage, v int) error {
	return a.assign(s.prefix()+"_group", atLeast(v, 1), func() { a.stages[s].group = v })
}

// SetDieSeparation sets the minimum gap between neighbouring stacked dies in mm.
func (a *AssemblyProcess) SetDieSeparation(v float64) error {
	return a.assign("die_separation", nonNegative(v), func() { a.dieSeparation = v })
}

// SetEdgeExclusion sets the margin kept around the stacked dies in mm.
func (a *AssemblyProcess) SetEdgeExclusion(v float64) error {
	return a.assign("edge_exclusion", nonNegative(v), func() { a.edgeExclusion = v })
}

func (a *AssemblyProcess) SetBondingPitch(v float64) error {
	return a.assign("bonding_pitch", nonNegative(v), func() { a.bondingPitch = v })
}

// SetMaxPadCurrentDensity sets the current a pad carries per mm² of pad.
func (a *AssemblyProcess) SetMaxPadCurrentDensity(v float64) error {
	return a.assign("max_pad_current_density", nonNegative(v), func() { a.maxPadCurrent = v })
}

func (a *AssemblyProcess) SetAlignmentYield(v float64) error {
	return a.assign("alignment_yield", unitInterval(v), func() { a.alignmentYield = v })
}

func (a *AssemblyProcess) SetBondingYield(v float64) error {
	return a.assign("bonding_yield", unitInterval(v), func() { a.bondingYield = v })
}

func (a *AssemblyProcess) SetDielectricBondDefectDensity(v float64) error {
	return a.assign("dielectric_bond_defect_density", nonNegative(v), func() { a.dielectricDD = v })
}

func (a *AssemblyProcess) SetTSVArea(v float64) error {
	return a.assign("tsv_area", nonNegative(v), func() { a.tsvArea = v })
}

func (a *AssemblyProcess) SetTSVYield(v float64) error {
	return a.assign("tsv_yield", unitInterval(v), func() { a.tsvYield = v })
}

func (a *AssemblyProcess) SetTSVPitch(v float64) error {
	return a.assign("tsv_pitch", nonNegative(v), func() { a.tsvPitch = v })
}

// Finalize seals the record. Machine and technician figures are required
// only without a black-box cost per second; their lifetimes must then be
// positive.
func (a *AssemblyProcess) Finalize() error {
	required := []string{"materials_cost_per_mm2", "die_separation", "edge_exclusion", "bonding_pitch",
		"max_pad_current_density", "alignment_yield", "bonding_yield", "dielectric_bond_defect_density"}
	for _, s := range []AssemblyStage{PickAndPlace, Bonding} {
		required = append(required, s.prefix()+"_time", s.prefix()+"_group")
		if a.bbCostPerSecond.ok {
			continue
		}
		required = append(required, s.prefix()+"_machine_cost", s.prefix()+"_machine_lifetime",
			s.prefix()+"_machine_uptime", s.prefix()+"_technician_yearly_cost")
		if a.IsSet(s.prefix()+"_machine_lifetime") && a.stages[s].machineLifetime == 0 {
			return a.fieldErr(s.prefix()+"_machine_lifetime", fmt.Errorf("%w: lifetime must be > 0", ErrOutOfRange))
		}
	}
	return a.finalize(required)
}

func (a *AssemblyProcess) MaterialsCostPerMM2() float64 { return a.materialsCostPerMM2 }
func (a *AssemblyProcess) DieSeparation() float64 { return a.dieSeparation }
func (a *AssemblyProcess) EdgeExclusion() float64 { return a.edgeExclusion }
func (a *AssemblyProcess) BondingPitch() float64 { return a.bondingPitch }
func (a *AssemblyProcess) MaxPadCurrentDensity() float64 { return a.maxPadCurrent }
func (a *AssemblyProcess) AlignmentYield() float64 { return a.alignmentYield }
func (a *AssemblyProcess) BondingYield() float64 { return a.bondingYield }
func (a *AssemblyProcess) DielectricBondDefectDensity() float64 { return a.dielectricDD }
func (a *AssemblyProcess) TSVArea() float64 { return a.tsvArea }
func (a *AssemblyProcess) TSVYield() float64 { return a.tsvYield }
func (a *AssemblyProcess) TSVPitch() float64 { return a.tsvPitch }

// BlackBoxCostPerSecond returns the override and whether it is set.
func (a *AssemblyProcess) BlackBoxCostPerSecond() (float64, bool) {
	return a.bbCostPerSecond.v, a.bbCostPerSecond.ok
}

// CostPerSecond returns the running cost of stage s:
//
//	(machine/lifetime + technician)/(seconds per year) · uptime
//
// or the black-box override.
func (a *AssemblyProcess) CostPerSecond(s AssemblyStage) float64 {
	if a.bbCostPerSecond.ok {
		return a.bbCostPerSecond.v
	}
	p := a.stages[s]
	return (p.machineCost/p.machineLifetime + p.technicianCost) / secondsPerYear * p.machineUptime
}

// StageTime returns the seconds stage s needs for n dies: time·⌈n/group⌉.
func (a *AssemblyProcess) StageTime(s AssemblyStage, n int) float64 {
	p := a.stages[s]
	return p.time * math.Ceil(float64(n)/float64(p.group))
}

// Time returns the combined pick-and-place and bonding time for n dies.
func (a *AssemblyProcess) Time(n int) float64 {
	return a.StageTime(PickAndPlace, n) + a.StageTime(Bonding, n)
}

// Cost returns the cost of assembling n dies onto a footprint of area mm².
func (a *AssemblyProcess) Cost(n int, area float64) float64 {
	return a.CostPerSecond(PickAndPlace)*a.StageTime(PickAndPlace, n) +
		a.CostPerSecond(Bonding)*a.StageTime(Bonding, n) +
		a.materialsCostPerMM2*area
}

// Yield returns the probability that assembling n dies with the given bond
// and TSV counts over area mm² succeeds. All terms are independent.
func (a *AssemblyProcess) Yield(n int, bonds, tsvs, area float64) float64 {
	y := math.Pow(a.alignmentYield, float64(n))
	y *= math.Pow(a.bondingYield, bonds)
	y *= math.Pow(a.tsvYield, tsvs)
	return y / (1 + a.dielectricDD*area)
}

// PowerPerPad returns the power one pad can deliver at the given voltage,
// treating the pad as a disc of diameter bonding_pitch/2.
func (a *AssemblyProcess) PowerPerPad(coreVoltage float64) float64 {
	padArea := math.Pi * (a.bondingPitch / 4) * (a.bondingPitch / 4)
	return a.maxPadCurrent * padArea * coreVoltage
}
