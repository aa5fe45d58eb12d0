package compare

import (
	"fmt"

	"github.com/emdiff/emdiff/internal/rng"
	"github.com/emdiff/emdiff/pkg/emd"
	"github.com/emdiff/emdiff/pkg/eventlog"
	"github.com/emdiff/emdiff/pkg/lang"
)

// PermutationComparator implements the permutation test: the cases of both
// logs are pooled, and the null distribution is built by repeatedly splitting
// the pool at random into two groups of the original sizes and computing the
// EMD between the groups.  The p-value is the fraction of permuted EMDs
// greater than the EMD observed between the two logs.
type PermutationComparator[T lang.Variant[T]] struct {
	strategy Strategy[T]
	solver   *emd.Solver
	opts     options
}

// NewPermutation returns a permutation comparator for the given strategy.
func NewPermutation[T lang.Variant[T]](strategy Strategy[T], opts ...Option) (*PermutationComparator[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	solver, err := emd.NewSolver(emd.WithIterations(o.emdIterations))
	if err != nil {
		return nil, err
	}
	return &PermutationComparator[T]{strategy: strategy, solver: solver, opts: o}, nil
}

// Compare tests the two logs for behavioral difference.  distributionSize is
// the number of permutation iterations.  A non-nil seed makes the result
// reproducible.
func (c *PermutationComparator[T]) Compare(log1, log2 *eventlog.Log, distributionSize int, seed *uint64) (*Result, error) {
	if distributionSize < 1 {
		return nil, fmt.Errorf("compare: distribution size must be >= 1, got %d", distributionSize)
	}

	b1, b2, err := c.strategy.ExtractRepresentations(log1, log2)
	if err != nil {
		return nil, err
	}
	if len(b1) == 0 || len(b2) == 0 {
		return nil, fmt.Errorf("compare: cannot compare empty event logs")
	}

	// All distances are computed once, over the deduplicated pool of variants
	// from both logs.  The baseline and every permuted split project into this
	// one matrix.
	pooled := make([]T, 0, len(b1)+len(b2))
	pooled = append(append(pooled, b1...), b2...)
	combined := lang.FromItems(pooled).Variants()

	full := SymmetricDistanceMatrix(combined, c.strategy.Cost,
		c.opts.progress(int64(len(combined))*int64(len(combined)),
			fmt.Sprintf("computing pooled distance matrix (%dx%d)", len(combined), len(combined))),
		c.opts.workers)

	l1 := lang.FromItems(b1)
	l2 := lang.FromItems(b2)
	baseline := ProjectDistanceMatrix(full, combined, l1, l2)
	observed, err := c.solver.Compute(l1.Frequencies(), l2.Frequencies(), baseline)
	if err != nil {
		return nil, err
	}

	emds, err := c.permutationDistribution(full, combined, b1, b2, distributionSize, seed)
	if err != nil {
		return nil, err
	}
	return newResult(observed.EMD, emds), nil
}

// permutationDistribution shuffles the pooled cases into two groups of sizes
// |log1| and |log2| per iteration and computes the EMD between the group
// languages, projected out of the precomputed pooled distance matrix.
func (c *PermutationComparator[T]) permutationDistribution(full *emd.Matrix, combined []T, b1, b2 []T, distributionSize int, seed *uint64) ([]float64, error) {
	ix := lang.NewIndex(combined)
	n1 := len(b1)
	total := n1 + len(b2)

	// Each case reduced to the position of its variant in the pool; shuffling
	// these is equivalent to shuffling the cases themselves.
	cases := make([]variantIndex, 0, total)
	for _, item := range b1 {
		cases = append(cases, variantIndex(ix.MustLookup(item)))
	}
	for _, item := range b2 {
		cases = append(cases, variantIndex(ix.MustLookup(item)))
	}

	r := rng.New(seed)
	rep := c.opts.progress(int64(distributionSize), "computing permutation EMD distribution")

	emds := make([]float64, 0, distributionSize)
	for it := 0; it < distributionSize; it++ {
		// Partial Fisher-Yates: only the first n1 positions need to be a
		// uniform sample of the pool, the rest is the complement.
		for i := 0; i < n1; i++ {
			j := i + r.IntN(total-i)
			cases[i], cases[j] = cases[j], cases[i]
		}
		g1 := lang.FromItems(cases[:n1])
		g2 := lang.FromItems(cases[n1:])
		projected := full.Select(positions(g1.Variants()), positions(g2.Variants()))

		res, err := c.solver.Compute(g1.Frequencies(), g2.Frequencies(), projected)
		if err != nil {
			return nil, err
		}
		emds = append(emds, res.EMD)
		rep.Step(1)
	}
	rep.Done()
	return emds, nil
}
