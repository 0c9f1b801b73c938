// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for distance-matrix checks.
//  - Return sentinel errors tagged with the validator name so call sites can
//    match them with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// normalizeTol rejects NaN/Inf tolerances and flips negative ones.
func normalizeTol(tag string, tol float64) (float64, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return 0, validatorErrorf(tag, ErrNaNInf)
	}
	if tol < 0 {
		tol = -tol
	}

	return tol, nil
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols). Assumes m != nil.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric verifies |A[i,j] − A[j,i]| ≤ tol for all i<j.
// Returns ErrNilMatrix/ErrDimensionMismatch on structural issues, ErrNaNInf on a
// bad tol, ErrAsymmetry on violation.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, tol float64) error {
	const tag = "ValidateSymmetric"
	if m == nil {
		return validatorErrorf(tag, ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf(tag, ErrDimensionMismatch)
	}
	tol, err := normalizeTol(tag, tol)
	if err != nil {
		return err
	}

	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf(tag, ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal verifies |A[i,i]| ≤ tol for every i. Assumes a square m.
// Complexity: O(n).
func ValidateZeroDiagonal(m Matrix, tol float64) error {
	const tag = "ValidateZeroDiagonal"
	if m == nil {
		return validatorErrorf(tag, ErrNilMatrix)
	}
	tol, err := normalizeTol(tag, tol)
	if err != nil {
		return err
	}

	var (
		i int
		v float64
	)
	for i = 0; i < m.Rows(); i++ {
		v, _ = m.At(i, i)
		if math.Abs(v) > tol {
			return validatorErrorf(tag, ErrNonZeroDiagonal)
		}
	}

	return nil
}

// ValidateNonNegative verifies every entry is finite and ≥ 0.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	const tag = "ValidateNonNegative"
	if m == nil {
		return validatorErrorf(tag, ErrNilMatrix)
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(tag, ErrNaNInf)
			}
			if v < 0 {
				return validatorErrorf(tag, ErrNegative)
			}
		}
	}

	return nil
}

// ValidateDistance runs the distance-matrix checks in a fixed order:
// NotNil → Square → NonNegative → ZeroDiagonal → Symmetric.
// The first violation is returned.
// Complexity: O(n²).
func ValidateDistance(m Matrix, tol float64) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if err := ValidateNonNegative(m); err != nil {
		return err
	}
	if err := ValidateZeroDiagonal(m, tol); err != nil {
		return err
	}

	return ValidateSymmetric(m, tol)
}
