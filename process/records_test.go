package process_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/chiplet"
	"github.com/katalvlaran/chiplet/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSettersRejectInvalidValues verifies range validation on assignment and
// that the error names the offending field.
func TestSettersRejectInvalidValues(t *testing.T) {
	t.Parallel()

	w := process.NewWaferProcess("wp")
	l := process.NewLayer("m1")
	io := process.NewIO("ucie")
	a := process.NewAssemblyProcess("asm")
	tp := process.NewTestProcess("tp")

	tests := []struct {
		name  string
		set   func() error
		field string
		want  error
	}{
		{"negative diameter", func() error { return w.SetDiameter(-1) }, "wafer_diameter", process.ErrOutOfRange},
		{"yield above one", func() error { return w.SetProcessYield(1.5) }, "wafer_process_yield", process.ErrOutOfRange},
		{"nan litho", func() error { return l.SetLithoPercent(math.NaN()) }, "litho_percent", process.ErrNotFinite},
		{"litho above one", func() error { return l.SetLithoPercent(1.01) }, "litho_percent", process.ErrOutOfRange},
		{"negative wire count", func() error { return io.SetWireCount(-2) }, "wire_count", process.ErrOutOfRange},
		{"zero group", func() error { return a.SetGroup(process.Bonding, 0) }, "bonding_group", process.ErrOutOfRange},
		{"uptime above one", func() error { return a.SetMachineUptime(process.PickAndPlace, 2) }, "picknplace_machine_uptime", process.ErrOutOfRange},
		{"coverage below zero", func() error { return tp.SetDefectCoverage(process.AssemblyTest, -0.1) }, "assembly_defect_coverage", process.ErrOutOfRange},
		{"zero samples", func() error { return tp.SetSamplesPerInput(0) }, "samples_per_input", process.ErrOutOfRange},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.set()
			require.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, chiplet.ErrConfiguration)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

// TestWaferBoundsDependOnDiameter verifies the half-diameter limits.
func TestWaferBoundsDependOnDiameter(t *testing.T) {
	t.Parallel()

	w := process.NewWaferProcess("wp")
	require.NoError(t, w.SetEdgeExclusion(500), "no diameter yet, only nonnegative")

	w = process.NewWaferProcess("wp")
	require.NoError(t, w.SetDiameter(300))
	require.NoError(t, w.SetEdgeExclusion(150))
	assert.ErrorIs(t, w.SetEdgeExclusion(151), process.ErrOutOfRange)
	assert.ErrorIs(t, w.SetDicingDistance(200), process.ErrOutOfRange)
	assert.ErrorIs(t, w.SetReticle(26, 160), process.ErrOutOfRange)
}

// TestFinalizedRecordsRejectMutation verifies that every setter fails after Finalize.
func TestFinalizedRecordsRejectMutation(t *testing.T) {
	t.Parallel()

	w := newWafer(t, false)
	l := newLayer(t, 0)
	a := newAssembly(t)

	for name, err := range map[string]error{
		"wafer diameter":  w.SetDiameter(200),
		"wafer fill":      w.SetFillGrid(true),
		"layer cost":      l.SetCostPerMM2(1),
		"layer routing":   l.SetRoutingLayerCount(3),
		"assembly pitch":  a.SetBondingPitch(0.01),
		"assembly bb cps": a.SetBlackBoxCostPerSecond(1),
	} {
		assert.ErrorIs(t, err, process.ErrFinalized, name)
		assert.ErrorIs(t, err, chiplet.ErrConfiguration, name)
	}
	assert.Equal(t, 300.0, w.Diameter())
	assert.True(t, w.Finalized())
}

// TestFinalizeRequiresFields verifies missing-field detection per record kind.
func TestFinalizeRequiresFields(t *testing.T) {
	t.Parallel()

	io := process.NewIO("ucie")
	require.NoError(t, io.SetBandwidth(32))
	err := io.Finalize()
	require.ErrorIs(t, err, process.ErrMissingField)
	assert.True(t, process.IsIncomplete(err))
	assert.Contains(t, err.Error(), "reach")
	assert.False(t, io.Finalized())
	require.NoError(t, io.SetReach(2), "failed Finalize leaves the record mutable")

	unnamed := process.NewLayer("")
	err = unnamed.Finalize()
	require.ErrorIs(t, err, process.ErrMissingField)
	assert.Contains(t, err.Error(), "name")
}

// TestAssemblyFinalizeWithBlackBoxCost verifies that the override makes
// machine and technician figures optional.
func TestAssemblyFinalizeWithBlackBoxCost(t *testing.T) {
	t.Parallel()

	build := func(bb bool) *process.AssemblyProcess {
		a := process.NewAssemblyProcess("bb")
		require.NoError(t, a.SetMaterialsCostPerMM2(0))
		for _, s := range []process.AssemblyStage{process.PickAndPlace, process.Bonding} {
			require.NoError(t, a.SetTime(s, 1))
			require.NoError(t, a.SetGroup(s, 1))
		}
		require.NoError(t, a.SetDieSeparation(0))
		require.NoError(t, a.SetEdgeExclusion(0))
		require.NoError(t, a.SetBondingPitch(0.05))
		require.NoError(t, a.SetMaxPadCurrentDensity(0))
		require.NoError(t, a.SetAlignmentYield(1))
		require.NoError(t, a.SetBondingYield(1))
		require.NoError(t, a.SetDielectricBondDefectDensity(0))
		if bb {
			require.NoError(t, a.SetBlackBoxCostPerSecond(0.25))
		}
		return a
	}

	assert.ErrorIs(t, build(false).Finalize(), process.ErrMissingField)

	a := build(true)
	require.NoError(t, a.Finalize())
	assert.Equal(t, 0.25, a.CostPerSecond(process.PickAndPlace))
	assert.Equal(t, 0.25, a.CostPerSecond(process.Bonding))
	assert.Equal(t, 1.0, a.TSVYield(), "TSV yield defaults to no effect")
}

// TestAssemblyZeroLifetimeRejected verifies the lifetime guard in Finalize.
func TestAssemblyZeroLifetimeRejected(t *testing.T) {
	t.Parallel()

	a := process.NewAssemblyProcess("a")
	require.NoError(t, a.SetMachineLifetime(process.Bonding, 0))
	err := a.Finalize()
	require.True(t, errors.Is(err, process.ErrOutOfRange))
	assert.Contains(t, err.Error(), "bonding_machine_lifetime")
}
