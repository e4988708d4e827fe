// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for shape and value checks.
//  - Return sentinels tagged with the validator name so call sites can wrap
//    uniformly and callers can match with errors.Is.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape(a, b *Dense) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquareOf checks that m is n×n.
func ValidateSquareOf(m *Dense, n int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != n || m.Cols() != n {
		return validatorErrorf("ValidateSquareOf", ErrDimensionMismatch)
	}

	return nil
}

// ValidateRange checks that every entry is finite and lies in [lo, hi].
// Entries below zero report ErrNegative when lo is 0, so adjacency checks
// read naturally; other violations report ErrOutOfRange.
// Complexity: O(r*c).
func ValidateRange(m *Dense, lo, hi float64) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	for k, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf(fmt.Sprintf("ValidateRange(%d,%d)", k/m.c, k%m.c), ErrNaNInf)
		}
		if v < lo && lo == 0 {
			return validatorErrorf(fmt.Sprintf("ValidateRange(%d,%d)", k/m.c, k%m.c), ErrNegative)
		}
		if v < lo || v > hi {
			return validatorErrorf(fmt.Sprintf("ValidateRange(%d,%d)", k/m.c, k%m.c), ErrOutOfRange)
		}
	}

	return nil
}
