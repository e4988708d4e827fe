package process

import (
	"fmt"
	"math"
)

// TestStage selects one of the two independently enabled test stages.
type TestStage int

const (
	// SelfTest screens each die on its own before assembly.
	SelfTest TestStage = iota
	// AssemblyTest screens the assembled stack.
	AssemblyTest
)

func (s TestStage) prefix() string {
	if s == AssemblyTest {
		return "assembly"
	}
	return "self"
}

func (s TestStage) String() string { return s.prefix() }

// DefaultFailureDistribution is the failure distribution a stage assumes when
// none is given.
const DefaultFailureDistribution = "normal"

type testStage struct {
	enabled           bool
	bbPatternCount    optional
	bbScanChainLength optional
	defectCoverage    float64
	testReuse         int
	numScanChains     int
	ioPerScanChain    int
	testIOOffset      int
	failureDist       string
}

// TestProcess describes self and assembly test economics.
type TestProcess struct {
	record
	timePerCycle    float64
	costPerSecond   float64
	samplesPerInput int
	stages          [2]testStage
}

// NewTestProcess returns an empty, mutable test process with both stages disabled.
func NewTestProcess(name string) *TestProcess {
	t := &TestProcess{record: newRecord("test_process", name), samplesPerInput: 1}
	for i := range t.stages {
		t.stages[i].testReuse = 1
		t.stages[i].failureDist = DefaultFailureDistribution
	}
	return t
}

// SetTimePerTestCycle sets the tester cycle time in seconds.
func (t *TestProcess) SetTimePerTestCycle(v float64) error {
	return t.assign("time_per_test_cycle", nonNegative(v), func() { t.timePerCycle = v })
}

// SetCostPerSecond sets the tester cost per second.
func (t *TestProcess) SetCostPerSecond(v float64) error {
	return t.assign("cost_per_second", nonNegative(v), func() { t.costPerSecond = v })
}

func (t *TestProcess) SetSamplesPerInput(v int) error {
	return t.assign("samples_per_input", atLeast(v, 1), func() { t.samplesPerInput = v })
}

// SetEnabled turns stage s on or off.
func (t *TestProcess) SetEnabled(s TestStage, v bool) error {
	return t.assign("test_"+s.prefix(), nil, func() { t.stages[s].enabled = v })
}

// SetBlackBoxPatternCount overrides the pattern-count heuristic of stage s.
func (t *TestProcess) SetBlackBoxPatternCount(s TestStage, v float64) error {
	return t.assign("bb_"+s.prefix()+"_pattern_count", nonNegative(v),
		func() { t.stages[s].bbPatternCount = optional{v: v, ok: true} })
}

// SetBlackBoxScanChainLength overrides the scan-chain-length heuristic of stage s.
func (t *TestProcess) SetBlackBoxScanChainLength(s TestStage, v float64) error {
	return t.assign("bb_"+s.prefix()+"_scan_chain_length", nonNegative(v),
		func() { t.stages[s].bbScanChainLength = optional{v: v, ok: true} })
}

func (t *TestProcess) SetDefectCoverage(s TestStage, v float64) error {
	return t.assign(s.prefix()+"_defect_coverage", unitInterval(v), func() { t.stages[s].defectCoverage = v })
}

func (t *TestProcess) SetTestReuse(s TestStage, v int) error {
	return t.assign(s.prefix()+"_test_reuse", atLeast(v, 1), func() { t.stages[s].testReuse = v })
}

func (t *TestProcess) SetNumScanChains(s TestStage, v int) error {
	return t.assign(s.prefix()+"_num_scan_chains", atLeast(v, 0), func() { t.stages[s].numScanChains = v })
}

func (t *TestProcess) SetNumIOPerScanChain(s TestStage, v int) error {
	return t.assign(s.prefix()+"_num_io_per_scan_chain", atLeast(v, 0), func() { t.stages[s].ioPerScanChain = v })
}

func (t *TestProcess) SetNumTestIOOffset(s TestStage, v int) error {
	return t.assign(s.prefix()+"_num_test_io_offset", atLeast(v, 0), func() { t.stages[s].testIOOffset = v })
}

func (t *TestProcess) SetFailureDistribution(s TestStage, v string) error {
	var check error
	if v == "" {
		check = fmt.Errorf("%w: empty distribution", ErrOutOfRange)
	}
	return t.assign(s.prefix()+"_test_failure_dist", check, func() { t.stages[s].failureDist = v })
}

// Finalize seals the record. Stage parameters are required only for
// enabled stages.
func (t *TestProcess) Finalize() error {
	required := []string{"time_per_test_cycle", "cost_per_second", "samples_per_input"}
	for _, s := range []TestStage{SelfTest, AssemblyTest} {
		if !t.stages[s].enabled {
			continue
		}
		p := s.prefix()
		required = append(required, p+"_defect_coverage", p+"_num_scan_chains",
			p+"_num_io_per_scan_chain", p+"_num_test_io_offset")
	}
	return t.finalize(required)
}

func (t *TestProcess) TimePerTestCycle() float64 { return t.timePerCycle }
func (t *TestProcess) CostPerSecond() float64 { return t.costPerSecond }
func (t *TestProcess) SamplesPerInput() int { return t.samplesPerInput }

// Enabled reports whether stage s screens parts.
func (t *TestProcess) Enabled(s TestStage) bool { return t.stages[s].enabled }

// DefectCoverage returns the fraction of defects stage s detects.
func (t *TestProcess) DefectCoverage(s TestStage) float64 { return t.stages[s].defectCoverage }

// FailureDistribution returns the failure distribution name of stage s.
func (t *TestProcess) FailureDistribution(s TestStage) string { return t.stages[s].failureDist }

// TestReuse returns how many designs share the ATPG effort of stage s.
func (t *TestProcess) TestReuse(s TestStage) int { return t.stages[s].testReuse }

// Yield returns the fraction of parts passing stage s:
// 1 − (1−trueYield)·coverage, or 1 when the stage is disabled.
func (t *TestProcess) Yield(s TestStage, trueYield float64) float64 {
	if !t.stages[s].enabled {
		return 1
	}
	return 1 - (1-trueYield)*t.stages[s].defectCoverage
}

// Quality returns trueYield/testYield clamped to at most 1. A zero test
// yield resolves to 1, the limit of the ratio.
func Quality(trueYield, testYield float64) float64 {
	if testYield == 0 {
		return 1
	}
	return math.Min(trueYield/testYield, 1)
}

// PatternCount returns the override or the unvalidated heuristic 2^(1.5·gfr).
func (t *TestProcess) PatternCount(s TestStage, gateFlopRatio float64) float64 {
	if bb := t.stages[s].bbPatternCount; bb.ok {
		return bb.v
	}
	return math.Pow(2, 1.5*gateFlopRatio)
}

// ScanChainLengthPerMM2 returns the override or the heuristic
// gatesPerMM2/gfr/numScanChains.
func (t *TestProcess) ScanChainLengthPerMM2(s TestStage, gatesPerMM2, gateFlopRatio float64) (float64, error) {
	st := t.stages[s]
	if st.bbScanChainLength.ok {
		return st.bbScanChainLength.v, nil
	}
	if gateFlopRatio == 0 || st.numScanChains == 0 {
		return 0, t.fieldErr(s.prefix()+"_num_scan_chains", ErrScanChain)
	}
	return gatesPerMM2 / gateFlopRatio / float64(st.numScanChains), nil
}

// TestInputs is what a die contributes to one test stage.
type TestInputs struct {
	// Area tested in mm²: the die core area for SelfTest, the core area of
	// the die and its direct children for AssemblyTest.
	Area float64
	// GateFlopRatio of the die (SelfTest) or its area-weighted stack average.
	GateFlopRatio float64
	// GatesPerMM2 of the die (SelfTest) or its area-weighted stack average.
	GatesPerMM2 float64
}

// Cost returns the tester cost of stage s:
//
//	area · cycle · costPerSecond · (patterns + samples) · scanLengthPerMM2
//
// A disabled stage costs nothing.
func (t *TestProcess) Cost(s TestStage, in TestInputs) (float64, error) {
	if !t.stages[s].enabled {
		return 0, nil
	}
	scan, err := t.ScanChainLengthPerMM2(s, in.GatesPerMM2, in.GateFlopRatio)
	if err != nil {
		return 0, err
	}
	patterns := t.PatternCount(s, in.GateFlopRatio)
	return in.Area * t.timePerCycle * t.costPerSecond * (patterns + float64(t.samplesPerInput)) * scan, nil
}

// NumTestIOs returns the pins the enabled stages need.
func (t *TestProcess) NumTestIOs() float64 {
	var n int
	for _, st := range t.stages {
		if st.enabled {
			n += st.ioPerScanChain*st.numScanChains + st.testIOOffset
		}
	}
	return float64(n)
}

// ATPGCost returns the pattern-generation NRE. Pattern generation cost is
// not modelled and is always zero.
func (t *TestProcess) ATPGCost() float64 {
	return 0
}
