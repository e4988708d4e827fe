package process_test

import (
	"testing"

	"github.com/katalvlaran/chiplet/process"
	"github.com/stretchr/testify/require"
)

// newWafer returns a finalized 300 mm wafer process with 3 mm edge exclusion.
func newWafer(t *testing.T, grid bool) *process.WaferProcess {
	t.Helper()
	w := process.NewWaferProcess("wp300")
	require.NoError(t, w.SetDiameter(300))
	require.NoError(t, w.SetEdgeExclusion(3))
	require.NoError(t, w.SetProcessYield(0.95))
	require.NoError(t, w.SetDicingDistance(0.1))
	require.NoError(t, w.SetReticle(26, 33))
	require.NoError(t, w.SetFillGrid(grid))
	for _, c := range process.DesignClasses {
		require.NoError(t, w.SetNRECost(c, 1, 2))
	}
	require.NoError(t, w.Finalize())
	return w
}

// newLayer returns a finalized active layer.
func newLayer(t *testing.T, litho float64) *process.Layer {
	t.Helper()
	l := process.NewLayer("active")
	require.NoError(t, l.SetActive(true))
	require.NoError(t, l.SetCostPerMM2(0.1))
	require.NoError(t, l.SetTransistorDensity(100))
	require.NoError(t, l.SetDefectDensity(0.1))
	require.NoError(t, l.SetCriticalAreaRatio(0.6))
	require.NoError(t, l.SetClusteringFactor(2))
	require.NoError(t, l.SetLithoPercent(litho))
	require.NoError(t, l.SetMaskCost(1e6))
	require.NoError(t, l.SetStitchingYield(1))
	require.NoError(t, l.Finalize())
	return l
}

// newAssembly returns a finalized assembly process with machine-derived costs.
func newAssembly(t *testing.T) *process.AssemblyProcess {
	t.Helper()
	a := process.NewAssemblyProcess("hybrid")
	require.NoError(t, a.SetMaterialsCostPerMM2(0.01))
	for _, s := range []process.AssemblyStage{process.PickAndPlace, process.Bonding} {
		require.NoError(t, a.SetMachineCost(s, 1e6))
		require.NoError(t, a.SetMachineLifetime(s, 5))
		require.NoError(t, a.SetMachineUptime(s, 0.9))
		require.NoError(t, a.SetTechnicianYearlyCost(s, 1e5))
		require.NoError(t, a.SetTime(s, 10))
		require.NoError(t, a.SetGroup(s, 2))
	}
	require.NoError(t, a.SetDieSeparation(0.1))
	require.NoError(t, a.SetEdgeExclusion(0.5))
	require.NoError(t, a.SetBondingPitch(0.04))
	require.NoError(t, a.SetMaxPadCurrentDensity(1e4))
	require.NoError(t, a.SetAlignmentYield(0.99))
	require.NoError(t, a.SetBondingYield(0.9999))
	require.NoError(t, a.SetDielectricBondDefectDensity(0.001))
	require.NoError(t, a.Finalize())
	return a
}
