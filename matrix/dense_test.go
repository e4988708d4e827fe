// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for Dense.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/chiplet/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDense verifies shape validation and zero initialization.
func TestNewDense(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Zero(t, v)

	empty, err := matrix.NewSquare(0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows())

	_, err = matrix.NewDense(-1, 2)
	assert.ErrorIs(t, err, matrix.ErrBadShape)
}

// TestDenseAtSetBounds verifies that out-of-range access returns ErrOutOfRange.
func TestDenseAtSetBounds(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewSquare(2)
	require.NoError(t, err)

	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row overflow", 2, 0},
		{"col overflow", 0, 2},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.At(tc.row, tc.col)
			assert.ErrorIs(t, err, matrix.ErrOutOfRange)
			assert.ErrorIs(t, m.Set(tc.row, tc.col, 1), matrix.ErrOutOfRange)
			assert.ErrorIs(t, m.Add(tc.row, tc.col, 1), matrix.ErrOutOfRange)
		})
	}

	require.NoError(t, m.Set(0, 1, 2.5))
	require.NoError(t, m.Add(0, 1, 0.5))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

// TestFromRows verifies copying and ragged-row rejection.
func TestFromRows(t *testing.T) {
	t.Parallel()

	src := [][]float64{{1, 2}, {3, 4}}
	m, err := matrix.FromRows(src)
	require.NoError(t, err)
	src[0][0] = 99
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v, "FromRows must copy")

	_, err = matrix.FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestCloneIsDeep verifies that Clone does not share storage.
func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	m, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	c := m.Clone()
	require.NoError(t, c.Set(1, 1, 40))
	v, _ := m.At(1, 1)
	assert.Equal(t, 4.0, v)
	assert.Equal(t, "[1, 2]\n[3, 40]\n", c.String())
}
