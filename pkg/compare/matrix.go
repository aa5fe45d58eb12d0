package compare

import (
	"sync"

	"github.com/cespare/xxhash"

	"github.com/emdiff/emdiff/pkg/emd"
	"github.com/emdiff/emdiff/pkg/lang"
	"github.com/emdiff/emdiff/pkg/progress"
)

// Pairwise distance evaluation dominates the cost of a comparison: n*m cost
// calls, each an O(L^2) dynamic program.  Variant digests give a cheap exact
// fast path for identical variants (digest match is verified against the full
// key before short-circuiting to 0), and the symmetric variant computes only
// the upper triangle.

type digested struct {
	sum uint64
	key string
}

func digest[T lang.Variant[T]](variants []T) []digested {
	out := make([]digested, len(variants))
	for i, v := range variants {
		key := v.Key()
		out[i] = digested{sum: xxhash.Sum64String(key), key: key}
	}
	return out
}

// DistanceMatrix evaluates cost for every pair from the two variant
// collections.  Progress is reported once per row.
func DistanceMatrix[T lang.Variant[T]](v1, v2 []T, cost func(a, b T) float64, rep progress.Reporter) *emd.Matrix {
	m := emd.NewMatrix(len(v1), len(v2))
	d1, d2 := digest(v1), digest(v2)
	for i := range v1 {
		for j := range v2 {
			if d1[i].sum == d2[j].sum && d1[i].key == d2[j].key {
				continue // identical variants, distance 0
			}
			m.Set(i, j, cost(v1[i], v2[j]))
		}
		rep.Step(len(v2))
	}
	rep.Done()
	return m
}

// SymmetricDistanceMatrix evaluates cost for the upper triangle only and
// mirrors it, halving the evaluation count.  The caller must guarantee that
// cost is symmetric.  Rows are fanned out across the given number of workers;
// cells are independent, so the result is deterministic regardless of
// scheduling.
func SymmetricDistanceMatrix[T lang.Variant[T]](variants []T, cost func(a, b T) float64, rep progress.Reporter, workers int) *emd.Matrix {
	n := len(variants)
	m := emd.NewMatrix(n, n)
	if workers < 1 {
		workers = 1
	}

	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := i + 1; j < n; j++ {
					c := cost(variants[i], variants[j])
					m.Set(i, j, c)
					m.Set(j, i, c)
				}
				// The diagonal stays 0: a variant has distance 0 to itself.
				rep.Step(2*(n-i-1) + 1)
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()
	rep.Done()
	return m
}

// ProjectDistanceMatrix selects the sub-matrix with one row per variant of
// pop1 and one column per variant of pop2, where the full matrix was computed
// over source.  Every variant of both populations must occur in source.
func ProjectDistanceMatrix[T lang.Variant[T]](full *emd.Matrix, source []T, pop1, pop2 lang.Language[T]) *emd.Matrix {
	ix := lang.NewIndex(source)
	return full.Select(variantPositions(ix, pop1.Variants()), variantPositions(ix, pop2.Variants()))
}

func variantPositions[T lang.Variant[T]](ix *lang.Index[T], variants []T) []int {
	out := make([]int, len(variants))
	for i, v := range variants {
		out[i] = ix.MustLookup(v)
	}
	return out
}
