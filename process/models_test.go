package process_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/chiplet"
	"github.com/katalvlaran/chiplet/process"
	"github.com/katalvlaran/chiplet/wafer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLayerCost covers zero area, the plain wafer share and litho scaling.
func TestLayerCost(t *testing.T) {
	t.Parallel()

	wp := newWafer(t, false)

	plain := newLayer(t, 0)
	c, err := plain.Cost(0, 1, wp)
	require.NoError(t, err)
	assert.Zero(t, c)

	c, err = plain.Cost(100, 1, wp)
	require.NoError(t, err)
	want := 0.1 * math.Pi * 150 * 150 / 628
	assert.InDelta(t, want, c, 1e-9)

	litho := newLayer(t, 0.5)
	c, err = litho.Cost(100, 1, wp)
	require.NoError(t, err)
	util := 800.0 / 858.0
	assert.InDelta(t, want*0.5+want*0.5/util, c, 1e-9)

	_, err = plain.Cost(-1, 1, wp)
	assert.ErrorIs(t, err, chiplet.ErrCalculation)

	_, err = plain.Cost(50000, 1, wp)
	assert.ErrorIs(t, err, wafer.ErrDieTooLarge)
}

// TestLayerYieldAndGates checks delegation to the wafer model and gate density.
func TestLayerYieldAndGates(t *testing.T) {
	t.Parallel()

	l := newLayer(t, 0)
	assert.InDelta(t, math.Pow(4, -2), l.Yield(100), 1e-12)
	assert.Equal(t, 100*1e6/4, l.GatesPerMM2())
	assert.Zero(t, l.RoutingTracks(100, 1), "no routing pitch means no tracks")

	r := process.NewLayer("r")
	require.NoError(t, r.SetRoutingLayerCount(2))
	require.NoError(t, r.SetRoutingLayerPitch(0.001))
	assert.InDelta(t, 2*2*(10+10)/0.001, r.RoutingTracks(100, 1), 1e-6)
}

// TestAssemblyModels covers time, cost, yield and pad power.
func TestAssemblyModels(t *testing.T) {
	t.Parallel()

	a := newAssembly(t)

	assert.Equal(t, 0.0, a.StageTime(process.Bonding, 0))
	assert.Equal(t, 20.0, a.StageTime(process.Bonding, 3))
	assert.Equal(t, 40.0, a.Time(4))

	cps := (1e6/5 + 1e5) / (365 * 24 * 3600) * 0.9
	assert.InDelta(t, cps, a.CostPerSecond(process.PickAndPlace), 1e-15)
	assert.InDelta(t, cps*20+cps*20+0.01*50, a.Cost(3, 50), 1e-12)

	y := a.Yield(2, 100, 0, 50)
	assert.InDelta(t, 0.99*0.99*math.Pow(0.9999, 100)/(1+0.001*50), y, 1e-12)
	assert.Equal(t, 1.0, a.Yield(0, 0, 1000, 0), "default TSV yield is 1")

	assert.InDelta(t, 1e4*math.Pi*0.01*0.01*0.8, a.PowerPerPad(0.8), 1e-12)
}

// TestTestModels covers stage yield, quality clamping, heuristics and cost.
func TestTestModels(t *testing.T) {
	t.Parallel()

	tp := process.NewTestProcess("scan")
	require.NoError(t, tp.SetTimePerTestCycle(1e-9))
	require.NoError(t, tp.SetCostPerSecond(0.01))
	require.NoError(t, tp.SetSamplesPerInput(2))
	require.NoError(t, tp.SetEnabled(process.SelfTest, true))
	require.NoError(t, tp.SetDefectCoverage(process.SelfTest, 0.9))
	require.NoError(t, tp.SetNumScanChains(process.SelfTest, 10))
	require.NoError(t, tp.SetNumIOPerScanChain(process.SelfTest, 2))
	require.NoError(t, tp.SetNumTestIOOffset(process.SelfTest, 5))
	require.NoError(t, tp.Finalize(), "assembly stage disabled, its fields are optional")

	assert.InDelta(t, 1-(1-0.8)*0.9, tp.Yield(process.SelfTest, 0.8), 1e-12)
	assert.Equal(t, 1.0, tp.Yield(process.AssemblyTest, 0.3))

	assert.InDelta(t, 0.8/0.82, process.Quality(0.8, 0.82), 1e-12)
	assert.Equal(t, 1.0, process.Quality(0.9, 0.85))
	assert.Equal(t, 1.0, process.Quality(0, 0))

	assert.InDelta(t, math.Pow(2, 6), tp.PatternCount(process.SelfTest, 4), 1e-12)
	scan, err := tp.ScanChainLengthPerMM2(process.SelfTest, 1e6, 4)
	require.NoError(t, err)
	assert.InDelta(t, 1e6/4/10, scan, 1e-9)

	_, err = tp.ScanChainLengthPerMM2(process.SelfTest, 1e6, 0)
	assert.ErrorIs(t, err, chiplet.ErrCalculation)

	cost, err := tp.Cost(process.SelfTest, process.TestInputs{Area: 10, GateFlopRatio: 4, GatesPerMM2: 1e6})
	require.NoError(t, err)
	assert.InDelta(t, 10*1e-9*0.01*(64+2)*25000, cost, 1e-12)

	cost, err = tp.Cost(process.AssemblyTest, process.TestInputs{Area: 10})
	require.NoError(t, err)
	assert.Zero(t, cost)

	assert.Equal(t, 25.0, tp.NumTestIOs())
	assert.Zero(t, tp.ATPGCost())
	assert.Equal(t, process.DefaultFailureDistribution, tp.FailureDistribution(process.SelfTest))
}

// TestTestBlackBoxOverrides verifies that overrides bypass the heuristics.
func TestTestBlackBoxOverrides(t *testing.T) {
	t.Parallel()

	tp := process.NewTestProcess("bb")
	require.NoError(t, tp.SetBlackBoxPatternCount(process.AssemblyTest, 1000))
	require.NoError(t, tp.SetBlackBoxScanChainLength(process.AssemblyTest, 42))
	assert.Equal(t, 1000.0, tp.PatternCount(process.AssemblyTest, 9))
	scan, err := tp.ScanChainLengthPerMM2(process.AssemblyTest, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 42.0, scan)
}
