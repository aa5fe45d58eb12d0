package compare

import (
	"fmt"
	"sort"

	"github.com/emdiff/emdiff/internal/rng"
	"github.com/emdiff/emdiff/pkg/emd"
	"github.com/emdiff/emdiff/pkg/eventlog"
	"github.com/emdiff/emdiff/pkg/lang"
)

// BootstrapComparator implements the bootstrap method for process hypothesis
// testing ("Statistical tests and association measures for business
// processes", Leemans et al.): a null distribution is built by repeatedly
// computing the EMD between the first log and a frequency-weighted resample
// of itself, with replacement.  The p-value is the fraction of bootstrap EMDs
// greater than the EMD observed between the two logs.
type BootstrapComparator[T lang.Variant[T]] struct {
	strategy Strategy[T]
	solver   *emd.Solver
	opts     options
}

// NewBootstrap returns a bootstrap comparator for the given strategy.
func NewBootstrap[T lang.Variant[T]](strategy Strategy[T], opts ...Option) (*BootstrapComparator[T], error) {
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
	return &BootstrapComparator[T]{strategy: strategy, solver: solver, opts: o}, nil
}

// Compare tests the two logs for behavioral difference.  resampleSize is the
// size of each bootstrap sample (commonly the size of log 1),
// distributionSize the number of bootstrap iterations.  A non-nil seed makes
// the result reproducible.
func (c *BootstrapComparator[T]) Compare(log1, log2 *eventlog.Log, resampleSize, distributionSize int, seed *uint64) (*Result, error) {
	if resampleSize < 1 {
		return nil, fmt.Errorf("compare: resample size must be >= 1, got %d", resampleSize)
	}
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

	l1 := lang.FromItems(b1)
	l2 := lang.FromItems(b2)

	baseline := DistanceMatrix(l1.Variants(), l2.Variants(), c.strategy.Cost,
		c.opts.progress(int64(l1.Len())*int64(l2.Len()),
			fmt.Sprintf("computing distance matrix (%dx%d)", l1.Len(), l2.Len())))
	observed, err := c.solver.Compute(l1.Frequencies(), l2.Frequencies(), baseline)
	if err != nil {
		return nil, err
	}

	emds, err := c.bootstrapDistribution(l1, resampleSize, distributionSize, seed)
	if err != nil {
		return nil, err
	}
	return newResult(observed.EMD, emds), nil
}

// bootstrapDistribution draws distributionSize samples of resampleSize
// variants each (with replacement, weighted by the reference frequencies) and
// computes the EMD of every sample against the reference language.  The
// reference self-distance matrix is computed once and projected per sample.
func (c *BootstrapComparator[T]) bootstrapDistribution(ref lang.Language[T], resampleSize, distributionSize int, seed *uint64) ([]float64, error) {
	selfDists := SymmetricDistanceMatrix(ref.Variants(), c.strategy.Cost,
		c.opts.progress(int64(ref.Len())*int64(ref.Len()),
			fmt.Sprintf("computing self-distance matrix (%dx%d)", ref.Len(), ref.Len())),
		c.opts.workers)

	r := rng.New(seed)
	cum := cumulativeWeights(ref.Frequencies())
	rep := c.opts.progress(int64(distributionSize), "computing bootstrap EMD distribution")

	emds := make([]float64, 0, distributionSize)
	draw := make([]variantIndex, resampleSize)
	for it := 0; it < distributionSize; it++ {
		for k := range draw {
			x := r.Float64() * cum[len(cum)-1]
			draw[k] = variantIndex(sort.SearchFloat64s(cum, x))
		}
		sample := lang.FromItems(draw)
		projected := selfDists.SelectRows(positions(sample.Variants()))

		res, err := c.solver.Compute(sample.Frequencies(), ref.Frequencies(), projected)
		if err != nil {
			return nil, err
		}
		emds = append(emds, res.EMD)
		rep.Step(1)
	}
	rep.Done()
	return emds, nil
}

func cumulativeWeights(frequencies []float64) []float64 {
	cum := make([]float64, len(frequencies))
	total := 0.0
	for i, f := range frequencies {
		total += f
		cum[i] = total
	}
	return cum
}
