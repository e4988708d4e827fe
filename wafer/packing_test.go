package wafer_test

import (
	"testing"

	"github.com/katalvlaran/chiplet"
	"github.com/katalvlaran/chiplet/wafer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiesPerWaferReference pins both disciplines to reference counts.
func TestDiesPerWaferReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		x, y           float64
		usable, dicing float64
		grid, noGrid   int
	}{
		{"10x10 on 300mm", 10, 10, 294, 0.1, 614, 628},
		{"5x20 on 300mm", 5, 20, 294, 0.1, 596, 606},
		{"reticle-sized on 200mm", 26, 33, 194, 0.2, 24, 25},
		{"1x1 without dicing", 1, 1, 100, 0, 7663, 7709},
		{"100x1 sliver", 100, 1, 294, 0.1, 390, 446},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := wafer.Geometry{X: tc.x, Y: tc.y, UsableDiameter: tc.usable, Dicing: tc.dicing, Fill: wafer.Grid}
			n, err := wafer.DiesPerWafer(g)
			require.NoError(t, err)
			assert.Equal(t, tc.grid, n, "grid")

			g.Fill = wafer.NoGrid
			n, err = wafer.DiesPerWafer(g)
			require.NoError(t, err)
			assert.Equal(t, tc.noGrid, n, "no-grid")
		})
	}
}

// TestDiesPerWaferRejectsOversizedDie verifies that both disciplines fail
// instead of returning a negative or undefined count.
func TestDiesPerWaferRejectsOversizedDie(t *testing.T) {
	t.Parallel()

	for _, fill := range []wafer.Discipline{wafer.Grid, wafer.NoGrid} {
		fill := fill
		t.Run(fill.String(), func(t *testing.T) {
			_, err := wafer.DiesPerWafer(wafer.Geometry{X: 200, Y: 200, UsableDiameter: 294, Dicing: 0.1, Fill: fill})
			assert.ErrorIs(t, err, wafer.ErrDieTooLarge)
			assert.ErrorIs(t, err, chiplet.ErrCalculation)

			_, err = wafer.DiesPerWafer(wafer.Geometry{X: 0, Y: 10, UsableDiameter: 294, Fill: fill})
			assert.ErrorIs(t, err, wafer.ErrZeroDimension)
		})
	}
}

// TestDiesPerWaferShrinksWithDieSize checks monotonic behaviour on square dies.
func TestDiesPerWaferShrinksWithDieSize(t *testing.T) {
	t.Parallel()

	prev := int(^uint(0) >> 1)
	for _, side := range []float64{2, 4, 8, 16, 32} {
		n, err := wafer.DiesPerWafer(wafer.Geometry{X: side, Y: side, UsableDiameter: 294, Dicing: 0.1})
		require.NoError(t, err)
		assert.Less(t, n, prev)
		prev = n
	}
}
