// Package emd computes the Earth Mover's Distance (EMD) between two
// distributions given a pairwise ground-distance matrix, by solving the
// underlying dense transportation problem exactly.
package emd

import (
	"errors"
	"fmt"
)

// DefaultIterations is the default simplex pivot budget.
const DefaultIterations = 10000

var (
	// ErrInfeasible reports that no feasible transportation plan exists.
	// With two full probability distributions and a finite cost matrix this
	// cannot happen and indicates a bug in the inputs.
	ErrInfeasible = errors.New("emd: transportation problem is infeasible")
	// ErrUnbounded reports an unbounded objective.  The transportation
	// polytope is bounded, so this likewise indicates an input bug.
	ErrUnbounded = errors.New("emd: transportation problem is unbounded")
	// ErrMaxIterations reports that the pivot budget was exhausted before
	// reaching the optimum.  Increase the budget with WithIterations.
	ErrMaxIterations = errors.New("emd: max iterations reached before optimum")
)

// DimensionError reports frequency vectors that do not match the cost matrix.
type DimensionError struct {
	SourceLen, TargetLen int
	Rows, Cols           int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("emd: source length %d and target length %d do not match cost matrix dimensions %dx%d",
		e.SourceLen, e.TargetLen, e.Rows, e.Cols)
}

// Result is a solved transportation plan: the flow matrix and its total cost.
type Result struct {
	// Flow has the same dimensions as the cost matrix; Flow[i][j] is the
	// mass moved from source i to target j.
	Flow *Matrix
	// EMD is the total transport cost of the plan.
	EMD float64
}

// Solver computes EMDs under a fixed iteration budget.
type Solver struct {
	iterations int
}

// SolverOption configures a Solver.
type SolverOption func(*Solver) error

// WithIterations sets the simplex pivot budget.  A budget below 1 is a
// configuration error.
func WithIterations(n int) SolverOption {
	return func(s *Solver) error {
		if n < 1 {
			return fmt.Errorf("emd: iterations must be >= 1, got %d", n)
		}
		s.iterations = n
		return nil
	}
}

// NewSolver returns a solver with the configured options applied.
func NewSolver(opts ...SolverOption) (*Solver, error) {
	s := &Solver{iterations: DefaultIterations}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Compute solves the transportation problem between the source and target
// frequency vectors under the given cost matrix.  The inputs are not
// modified.
//
// The target vector is rescaled by sum(source)/sum(target) before solving, so
// two measures of unequal total mass are compared as if rebalanced onto the
// source's total.  This matches standard practice for EMD over empirical
// distributions and is relied upon by the resampling comparators.
func (s *Solver) Compute(source, target []float64, costs *Matrix) (*Result, error) {
	if len(source) != costs.Rows() || len(target) != costs.Cols() {
		return nil, &DimensionError{
			SourceLen: len(source), TargetLen: len(target),
			Rows: costs.Rows(), Cols: costs.Cols(),
		}
	}
	if len(source) == 0 || len(target) == 0 {
		return nil, &DimensionError{
			SourceLen: len(source), TargetLen: len(target),
			Rows: costs.Rows(), Cols: costs.Cols(),
		}
	}

	var sumSource, sumTarget float64
	for _, w := range source {
		if w < 0 {
			return nil, ErrInfeasible
		}
		sumSource += w
	}
	for _, w := range target {
		if w < 0 {
			return nil, ErrInfeasible
		}
		sumTarget += w
	}
	if sumSource <= 0 || sumTarget <= 0 {
		return nil, ErrInfeasible
	}

	a := make([]float64, len(source))
	copy(a, source)
	b := make([]float64, len(target))
	scale := sumSource / sumTarget
	for j, w := range target {
		b[j] = w * scale
	}

	flow, cost, err := solveTransport(a, b, costs, s.iterations)
	if err != nil {
		return nil, err
	}
	return &Result{Flow: flow, EMD: cost}, nil
}
