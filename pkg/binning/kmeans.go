package binning

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/emdiff/emdiff/internal/rng"
)

// KMeansConfig configures the k-means binner.  The zero value is not valid;
// start from DefaultKMeansConfig.
type KMeansConfig struct {
	// K is the number of clusters (bins).
	K int
	// MaxIterations bounds Lloyd's iteration.
	MaxIterations int
	// Seed makes the initialization deterministic when non-nil.
	Seed *uint64
}

// DefaultKMeansConfig returns the default configuration: 3 bins, at most 100
// iterations, entropy-seeded initialization.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{K: 3, MaxIterations: 100}
}

// KMeansBinner discretizes values by nearest-centroid assignment after
// clustering the one-dimensional training data.  Initialization picks a
// random first centroid and then greedily takes the value farthest from its
// nearest chosen centroid (k-means++ style farthest-point seeding); Lloyd's
// iteration then refines the centroids until assignments stabilize or the
// iteration budget runs out.  Centroids are sorted ascending afterwards so
// that the bin index correlates with value magnitude, which downstream cost
// functions rely on.
type KMeansBinner struct {
	centroids []float64
}

var _ Binner = &KMeansBinner{}

// NewKMeansBinner trains the binner.  K < 1, MaxIterations < 1 or empty
// training data is a configuration error.
func NewKMeansBinner(values []float64, cfg KMeansConfig) (*KMeansBinner, error) {
	if cfg.K < 1 {
		return nil, fmt.Errorf("binning: k-means needs k >= 1, got %d", cfg.K)
	}
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("binning: k-means needs at least one iteration, got %d", cfg.MaxIterations)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("binning: cannot train k-means binner on empty data")
	}

	centroids := kmeans(values, cfg)
	slices.SortFunc(centroids, cmp.Compare)
	return &KMeansBinner{centroids: centroids}, nil
}

// KMeansTrainer adapts NewKMeansBinner to a TrainFunc.
func KMeansTrainer(cfg KMeansConfig) TrainFunc {
	return func(values []float64) (Binner, error) {
		return NewKMeansBinner(values, cfg)
	}
}

func (b *KMeansBinner) NumBins() int { return len(b.centroids) }

// Bin returns the index of the nearest centroid.  Ties go to the smaller bin
// index, so repeated calls with the same value always agree.
func (b *KMeansBinner) Bin(v float64) int {
	best := 0
	bestDist := math.Abs(v - b.centroids[0])
	for i, c := range b.centroids[1:] {
		if d := math.Abs(v - c); d < bestDist {
			bestDist = d
			best = i + 1
		}
	}
	return best
}

func kmeans(values []float64, cfg KMeansConfig) []float64 {
	centroids := seedCentroids(values, cfg)
	k := len(centroids)
	membership := make([]int, len(values))
	sums := make([]float64, k)
	counts := make([]int, k)

	for it := 0; it < cfg.MaxIterations; it++ {
		changes := 0
		for i, v := range values {
			best := 0
			bestDist := math.Abs(v - centroids[0])
			for c := 1; c < k; c++ {
				if d := math.Abs(v - centroids[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if membership[i] != best {
				membership[i] = best
				changes++
			}
		}

		for c := 0; c < k; c++ {
			sums[c], counts[c] = 0, 0
		}
		for i, v := range values {
			sums[membership[i]] += v
			counts[membership[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				centroids[c] = 0
			} else {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}

		if changes == 0 {
			break
		}
	}
	return centroids
}

// seedCentroids picks the first centroid uniformly at random and each further
// centroid as the not-yet-taken value farthest from its nearest centroid.
func seedCentroids(values []float64, cfg KMeansConfig) []float64 {
	r := rng.New(cfg.Seed)
	taken := make([]bool, len(values))
	centroids := make([]float64, 0, cfg.K)

	first := r.IntN(len(values))
	taken[first] = true
	centroids = append(centroids, values[first])

	for len(centroids) < cfg.K {
		imax := 0
		dmax := math.Inf(-1)
		for i, v := range values {
			if taken[i] {
				continue
			}
			dmin := math.Inf(1)
			for _, c := range centroids {
				if d := math.Abs(v - c); d < dmin {
					dmin = d
				}
			}
			if dmin > dmax {
				dmax = dmin
				imax = i
			}
		}
		taken[imax] = true
		centroids = append(centroids, values[imax])
	}
	return centroids
}
