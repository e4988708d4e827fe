// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Reductions (RowSum, ColSum) and the element-wise Hadamard product used by
//     the interconnect fabric to turn link counts into pad and power figures.
//   - Square growth (Grow) used while a netlist introduces new blocks.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - No hidden allocations beyond the returned Dense.

package matrix

// RowSum returns Σ_j m[row][j].
// Complexity: O(c).
func (m *Dense) RowSum(row int) (float64, error) {
	if row < 0 || row >= m.r {
		return 0, denseErrorf("RowSum", row, 0, ErrOutOfRange)
	}
	var sum float64
	base := row * m.c
	for j := 0; j < m.c; j++ {
		sum += m.data[base+j]
	}

	return sum, nil
}

// ColSum returns Σ_i m[i][col].
// Complexity: O(r).
func (m *Dense) ColSum(col int) (float64, error) {
	if col < 0 || col >= m.c {
		return 0, denseErrorf("ColSum", 0, col, ErrOutOfRange)
	}
	var sum float64
	for i := 0; i < m.r; i++ {
		sum += m.data[i*m.c+col]
	}

	return sum, nil
}

// Hadamard returns the element-wise product a∘b as a new Dense.
// Complexity: O(r*c).
func Hadamard(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf("Hadamard", ErrNilMatrix)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf("Hadamard", err)
	}
	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for k := range a.data {
		out.data[k] = a.data[k] * b.data[k]
	}

	return out, nil
}

// Grow returns a copy of m padded with n zero rows and n zero columns,
// keeping existing entries at their indices.
// Complexity: O((r+n)*(c+n)).
func (m *Dense) Grow(n int) (*Dense, error) {
	if n < 0 {
		return nil, matrixErrorf("Grow", ErrBadShape)
	}
	out, err := NewDense(m.r+n, m.c+n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.r; i++ {
		copy(out.data[i*out.c:i*out.c+m.c], m.data[i*m.c:(i+1)*m.c])
	}

	return out, nil
}
