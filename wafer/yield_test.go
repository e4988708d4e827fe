package wafer_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/chiplet/wafer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLayerYieldFormula checks the negative-binomial value directly.
func TestLayerYieldFormula(t *testing.T) {
	t.Parallel()

	y := wafer.LayerYield(0.1, 100, 0.6, 2, 0.5)
	assert.InDelta(t, math.Pow(1+0.1*100*0.6/2, -2), y, 1e-12)
	assert.InDelta(t, 0.0625, y, 1e-12)
}

// TestLayerYieldMonotone verifies non-increasing behaviour in area and defect density.
func TestLayerYieldMonotone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, wafer.LayerYield(0, 500, 0.6, 2, 0.9))

	prev := 1.0
	for _, area := range []float64{0, 1, 10, 100, 1000} {
		y := wafer.LayerYield(0.05, area, 0.6, 2, 1)
		assert.LessOrEqual(t, y, prev)
		prev = y
	}
	prev = 1.0
	for _, dd := range []float64{0, 0.01, 0.1, 1} {
		y := wafer.LayerYield(dd, 50, 0.6, 2, 1)
		assert.LessOrEqual(t, y, prev)
		prev = y
	}
}

// TestStitchCountIsZero documents the single-reticle assumption.
func TestStitchCountIsZero(t *testing.T) {
	t.Parallel()

	assert.Zero(t, wafer.StitchCount(5000))
	assert.Equal(t, wafer.LayerYield(0.1, 10, 1, 1, 0), wafer.LayerYield(0.1, 10, 1, 1, 1))
}

// TestReticleUtilization covers tiling and error paths.
func TestReticleUtilization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		area float64
		want float64
	}{
		{"small die", 100, 800.0 / 858.0},
		{"two reticles", 1000, 1000.0 / 1716.0},
		{"exact fit", 858, 1},
		{"empty", 0, 1},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			u, err := wafer.ReticleUtilization(tc.area, 26, 33)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, u, 1e-12)
		})
	}

	_, err := wafer.ReticleUtilization(10, 0, 33)
	assert.ErrorIs(t, err, wafer.ErrZeroReticle)
	_, err = wafer.ReticleUtilization(-1, 26, 33)
	assert.ErrorIs(t, err, wafer.ErrNegativeArea)
}

// TestCostPerArea checks the whole-wafer amortization.
func TestCostPerArea(t *testing.T) {
	t.Parallel()

	got := wafer.CostPerArea(0.1, 300, 100, 628)
	assert.InDelta(t, 0.1*math.Pi*150*150/(628*100), got, 1e-12)
}
