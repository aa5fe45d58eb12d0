package emd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixFrom(rows [][]float64) *Matrix {
	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}

func TestComputeTwoByTwo(t *testing.T) {
	// Classic sanity check: with zero cost on the diagonal the optimal plan
	// keeps all mass in place.
	s, err := NewSolver()
	require.NoError(t, err)

	res, err := s.Compute(
		[]float64{0.5, 0.5},
		[]float64{0.5, 0.5},
		matrixFrom([][]float64{
			{0, 1},
			{1, 0},
		}))
	require.NoError(t, err)

	assert.InDelta(t, 0.0, res.EMD, 1e-12)
	assert.InDelta(t, 0.5, res.Flow.At(0, 0), 1e-12)
	assert.InDelta(t, 0.5, res.Flow.At(1, 1), 1e-12)
	assert.InDelta(t, 0.0, res.Flow.At(0, 1), 1e-12)
	assert.InDelta(t, 0.0, res.Flow.At(1, 0), 1e-12)
}

func TestComputeRectangular(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)

	costs := matrixFrom([][]float64{
		{0.3, 1.0},
		{1.5, 0.25},
		{0.1, 3.0},
	})
	res, err := s.Compute([]float64{0.1, 0.1, 0.8}, []float64{0.5, 0.5}, costs)
	require.NoError(t, err)

	// Optimal plan: target 0 takes 0.5 from the cheap source 2 (0.5*0.1);
	// target 1 takes the remaining 0.3 of source 2 (0.3*3.0), all of source 0
	// (0.1*1.0) and all of source 1 (0.1*0.25).  Checking the objective value
	// keeps the test independent of which degenerate basis the solver lands on.
	assert.InDelta(t, 1.075, res.EMD, 1e-9)

	// Flow marginals must reproduce the inputs.
	for i := 0; i < costs.Rows(); i++ {
		rowSum := 0.0
		for j := 0; j < costs.Cols(); j++ {
			rowSum += res.Flow.At(i, j)
		}
		assert.InDelta(t, []float64{0.1, 0.1, 0.8}[i], rowSum, 1e-9)
	}
	for j := 0; j < costs.Cols(); j++ {
		colSum := 0.0
		for i := 0; i < costs.Rows(); i++ {
			colSum += res.Flow.At(i, j)
		}
		assert.InDelta(t, 0.5, colSum, 1e-9)
	}
}

func TestComputeRebalancesTarget(t *testing.T) {
	// Target mass 2 is rescaled onto the source total of 1, so the result is
	// the same as with a normalized target.
	s, err := NewSolver()
	require.NoError(t, err)

	costs := matrixFrom([][]float64{
		{0, 1},
		{1, 0},
	})
	unbalanced, err := s.Compute([]float64{0.3, 0.7}, []float64{1.4, 0.6}, costs)
	require.NoError(t, err)
	balanced, err := s.Compute([]float64{0.3, 0.7}, []float64{0.7, 0.3}, costs)
	require.NoError(t, err)

	assert.InDelta(t, balanced.EMD, unbalanced.EMD, 1e-12)
	assert.InDelta(t, 0.4, unbalanced.EMD, 1e-12)
}

func TestComputeDimensionErrors(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)
	costs := matrixFrom([][]float64{
		{0, 1},
		{1, 0},
	})

	tt := []struct {
		name   string
		source []float64
		target []float64
	}{
		{name: "source too long", source: []float64{0.2, 0.3, 0.5}, target: []float64{0.5, 0.5}},
		{name: "target too short", source: []float64{0.5, 0.5}, target: []float64{1.0}},
		{name: "empty source", source: nil, target: []float64{0.5, 0.5}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Compute(tc.source, tc.target, costs)
			var dim *DimensionError
			assert.ErrorAs(t, err, &dim)
		})
	}
}

func TestComputeInfeasibleInputs(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)
	costs := matrixFrom([][]float64{
		{0, 1},
		{1, 0},
	})

	_, err = s.Compute([]float64{-0.5, 1.5}, []float64{0.5, 0.5}, costs)
	assert.ErrorIs(t, err, ErrInfeasible)

	_, err = s.Compute([]float64{0, 0}, []float64{0.5, 0.5}, costs)
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestComputeMaxIterations(t *testing.T) {
	// A single pivot is not enough to reach the optimum from the
	// northwest-corner start on this instance.
	s, err := NewSolver(WithIterations(1))
	require.NoError(t, err)

	costs := matrixFrom([][]float64{
		{0.3, 1.0},
		{1.5, 0.25},
		{0.1, 3.0},
	})
	_, err = s.Compute([]float64{0.1, 0.1, 0.8}, []float64{0.5, 0.5}, costs)
	assert.True(t, errors.Is(err, ErrMaxIterations))
}

func TestWithIterationsValidation(t *testing.T) {
	_, err := NewSolver(WithIterations(0))
	assert.Error(t, err)
	_, err = NewSolver(WithIterations(-3))
	assert.Error(t, err)
}

func TestMatrixSelect(t *testing.T) {
	m := matrixFrom([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	sub := m.Select([]int{2, 0}, []int{1, 1, 2})
	require.Equal(t, 2, sub.Rows())
	require.Equal(t, 3, sub.Cols())
	assert.Equal(t, 8.0, sub.At(0, 0))
	assert.Equal(t, 8.0, sub.At(0, 1))
	assert.Equal(t, 9.0, sub.At(0, 2))
	assert.Equal(t, 2.0, sub.At(1, 0))
	assert.Equal(t, 3.0, sub.At(1, 2))

	rows := m.SelectRows([]int{1, 1})
	require.Equal(t, 2, rows.Rows())
	assert.Equal(t, []float64{4, 5, 6}, []float64{rows.At(0, 0), rows.At(0, 1), rows.At(0, 2)})
	assert.Equal(t, []float64{4, 5, 6}, []float64{rows.At(1, 0), rows.At(1, 1), rows.At(1, 2)})
}
