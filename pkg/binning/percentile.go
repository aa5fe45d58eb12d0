package binning

import (
	"cmp"
	"fmt"
	"slices"
)

// PercentileBinner is a three-bin discretizer.  Values below the p-th
// percentile of the training data form bin 0, values at or above the
// (100−p)-th percentile form bin 2, and everything in between forms bin 1.
type PercentileBinner struct {
	lower float64
	upper float64
}

var _ Binner = &PercentileBinner{}

// NewPercentileBinner trains the binner on the given values with the lower
// threshold at pct percent and the upper threshold at 100−pct percent.
// Empty training data or a percentile outside [0, 100] is a configuration
// error.
func NewPercentileBinner(values []float64, pct float64) (*PercentileBinner, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("binning: cannot train percentile binner on empty data")
	}
	if pct < 0 || pct > 100 {
		return nil, fmt.Errorf("binning: percentile %v outside [0, 100]", pct)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	// cmp.Compare orders NaN below -Inf, giving a total order.
	slices.SortFunc(sorted, cmp.Compare)

	return &PercentileBinner{
		lower: percentile(sorted, pct),
		upper: percentile(sorted, 100-pct),
	}, nil
}

// PercentileTrainer adapts NewPercentileBinner to a TrainFunc.
func PercentileTrainer(pct float64) TrainFunc {
	return func(values []float64) (Binner, error) {
		return NewPercentileBinner(values, pct)
	}
}

func (b *PercentileBinner) NumBins() int { return 3 }

func (b *PercentileBinner) Bin(v float64) int {
	switch {
	case v < b.lower:
		return 0
	case v < b.upper:
		return 1
	default:
		return 2
	}
}

// percentile computes the pct-th percentile of the sorted data with linear
// interpolation between adjacent order statistics.
func percentile(sorted []float64, pct float64) float64 {
	rank := pct / 100 * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo
	if float64(lo) < rank {
		hi = lo + 1
	}
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}
