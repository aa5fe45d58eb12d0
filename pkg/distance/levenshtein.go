// Package distance implements a generic weighted Levenshtein (edit) distance
// between token sequences.  Per-token insertion, deletion and substitution
// costs are supplied through a CostModel, so the same dynamic program serves
// plain activity labels and richer tokens such as (activity, bin) pairs.
package distance

// CostModel supplies the per-token edit costs for tokens of type T.
type CostModel[T any] interface {
	Insertion(t T) float64
	Deletion(t T) float64
	Substitution(a, b T) float64
	Equal(a, b T) bool
}

// Weighted computes the weighted edit distance between the two sequences.
// Identical sequences short-circuit to 0 without running the dynamic program.
func Weighted[T any](a, b []T, m CostModel[T]) float64 {
	if equalSeq(a, b, m) {
		return 0
	}

	// First row: cumulative insertion costs against the empty sequence.
	prev := make([]float64, len(b)+1)
	cur := make([]float64, len(b)+1)
	for j, tok := range b {
		prev[j+1] = prev[j] + m.Insertion(tok)
	}

	for _, ta := range a {
		cur[0] = prev[0] + m.Insertion(ta)
		for j, tb := range b {
			cur[j+1] = min3(
				prev[j+1]+m.Deletion(ta),       // deletion
				cur[j]+m.Insertion(tb),         // insertion
				prev[j]+m.Substitution(ta, tb), // substitution
			)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Postnormalized computes the weighted edit distance divided by the length of
// the longer sequence, yielding a dissimilarity bounded by the maximum
// per-token cost.  Two empty sequences have distance 0.
func Postnormalized[T any](a, b []T, m CostModel[T]) float64 {
	length := max(len(a), len(b))
	if length == 0 {
		return 0
	}
	return Weighted(a, b, m) / float64(length)
}

func equalSeq[T any](a, b []T, m CostModel[T]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !m.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func min3(x, y, z float64) float64 {
	return min(x, min(y, z))
}

// Unit is the 0/1 Levenshtein cost model: unit insertion and deletion costs
// and a binary substitution cost.
type Unit[T comparable] struct{}

func (Unit[T]) Insertion(T) float64 { return 1 }
func (Unit[T]) Deletion(T) float64  { return 1 }
func (Unit[T]) Substitution(a, b T) float64 {
	if a == b {
		return 0
	}
	return 1
}
func (Unit[T]) Equal(a, b T) bool { return a == b }
