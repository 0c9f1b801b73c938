package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modiv/matrix"
)

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

func TestValidateDistance_Accepts(t *testing.T) {
	m := mustDense(t, [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	})
	require.NoError(t, matrix.ValidateDistance(m, 1e-9))
}

func TestValidateDistance_OrderOfChecks(t *testing.T) {
	cases := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"non-square", mustDense(t, [][]float64{{0, 1, 2}, {1, 0, 3}}), matrix.ErrDimensionMismatch},
		{"negative", mustDense(t, [][]float64{{0, -1}, {-1, 0}}), matrix.ErrNegative},
		{"diagonal", mustDense(t, [][]float64{{1, 2}, {2, 0}}), matrix.ErrNonZeroDiagonal},
		{"asymmetric", mustDense(t, [][]float64{{0, 2}, {3, 0}}), matrix.ErrAsymmetry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, matrix.ValidateDistance(tc.m, 1e-9), tc.want)
		})
	}
}

func TestValidateSymmetric_Tolerance(t *testing.T) {
	m := mustDense(t, [][]float64{{0, 1}, {1 + 1e-12, 0}})
	require.NoError(t, matrix.ValidateSymmetric(m, 1e-9))
	require.NoError(t, matrix.ValidateSymmetric(m, -1e-9), "negative tolerance is flipped")
	require.ErrorIs(t, matrix.ValidateSymmetric(m, 0), matrix.ErrAsymmetry)
	require.ErrorIs(t, matrix.ValidateSymmetric(m, math.NaN()), matrix.ErrNaNInf)
}
