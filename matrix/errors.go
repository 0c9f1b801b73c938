// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (optionally wrapped with a call-site tag
// via %w); callers match them with errors.Is.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible or non-square shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNonZeroDiagonal signals a diagonal entry farther than eps from zero.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal not zero within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegative signals a negative entry in a distance matrix.
	ErrNegative = errors.New("matrix: negative entry")

	// ErrNilMatrix indicates that a nil Matrix was passed.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrRagged indicates that a [][]float64 source has rows of different lengths.
	ErrRagged = errors.New("matrix: ragged rows")
)
