// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Reject NaN/±Inf on Set so distance data stays finite from ingestion onwards.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/SetSym: O(1); Clone/Flat: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxAt     = "At"
	ctxSet    = "Set"
	ctxSetSym = "SetSym"
)

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity: Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom copies a rectangular [][]float64 into a new Dense.
//
// Errors:
//   - ErrInvalidDimensions for an empty source.
//   - ErrRagged when rows have different lengths.
//   - ErrNaNInf (wrapped with coordinates) for non-finite entries.
//
// Complexity: Time O(r*c), Space O(r*c).
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}

	var (
		i, j int
		row  []float64
	)
	for i, row = range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("NewDenseFrom(row %d): %w", i, ErrRagged)
		}
		for j = range row {
			if err = m.Set(i, j, row[j]); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col). NaN and ±Inf are rejected with ErrNaNInf.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// SetSym stores v at both (row, col) and (col, row); used by readers of
// upper-triangle edge lists.
// Complexity: O(1).
func (m *Dense) SetSym(row, col int, v float64) error {
	if _, err := m.indexOf(col, row); err != nil {
		return denseErrorf(ctxSetSym, row, col, err)
	}
	if err := m.Set(row, col, v); err != nil {
		return err
	}

	return m.Set(col, row, v)
}

// Clone returns a deep copy with a new buffer.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Flat returns a copy of the row-major buffer (len == r*c).
// Consumers that need allocation-free reads in hot loops keep this copy.
func (m *Dense) Flat() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// String renders matrix rows as lines with comma-separated values.
// Intended for logs and debugging; not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
