// Package lang builds stochastic languages: empirical probability
// distributions over behavioral variants.  A variant is any hashable,
// totally-ordered representation of one case, such as an activity sequence.
package lang

import "slices"

// Variant is the capability set a representation must provide to participate
// in a stochastic language: a unique encoding usable as a hash key, and a
// total order used for canonical sorting.  Equal variants must have equal
// keys and compare as 0, and vice versa.
type Variant[T any] interface {
	Key() string
	Compare(other T) int
}

// Language is an immutable distribution over unique variants.  Variants are
// held in ascending canonical order with a parallel vector of relative
// frequencies summing to 1.
type Language[T Variant[T]] struct {
	variants    []T
	frequencies []float64
}

// FromItems counts the occurrences of each distinct item, normalizes by the
// population size and sorts the unique variants into canonical ascending
// order.  An empty input yields an empty language.
func FromItems[T Variant[T]](items []T) Language[T] {
	counts := make(map[string]int, len(items))
	reps := make(map[string]T, len(items))
	for _, item := range items {
		k := item.Key()
		if _, ok := counts[k]; !ok {
			reps[k] = item
		}
		counts[k]++
	}

	variants := make([]T, 0, len(counts))
	for k := range counts {
		variants = append(variants, reps[k])
	}
	slices.SortFunc(variants, func(a, b T) int { return a.Compare(b) })

	total := float64(len(items))
	frequencies := make([]float64, len(variants))
	for i, v := range variants {
		frequencies[i] = float64(counts[v.Key()]) / total
	}
	return Language[T]{variants: variants, frequencies: frequencies}
}

// Len returns the number of unique variants.
func (l Language[T]) Len() int { return len(l.variants) }

// Variants returns the unique variants in canonical ascending order.  The
// returned slice must not be modified.
func (l Language[T]) Variants() []T { return l.variants }

// Frequencies returns the relative frequency of each variant, parallel to
// Variants.  The returned slice must not be modified.
func (l Language[T]) Frequencies() []float64 { return l.frequencies }

// Variant returns the i-th variant in canonical order.
func (l Language[T]) Variant(i int) T { return l.variants[i] }

// Frequency returns the relative frequency of the i-th variant.
func (l Language[T]) Frequency(i int) float64 { return l.frequencies[i] }
