package lang

import "fmt"

// Index is a position lookup from variant to its index in a fixed population.
// It replaces repeated linear scans when translating between log-local
// variant indices, pooled-population indices and distance-matrix rows.
type Index[T Variant[T]] struct {
	pos map[string]int
}

// NewIndex builds the position lookup for the given population.  Later
// occurrences of duplicate variants are ignored.
func NewIndex[T Variant[T]](population []T) *Index[T] {
	pos := make(map[string]int, len(population))
	for i, v := range population {
		if _, ok := pos[v.Key()]; !ok {
			pos[v.Key()] = i
		}
	}
	return &Index[T]{pos: pos}
}

// Lookup returns the position of the variant in the indexed population.
func (ix *Index[T]) Lookup(v T) (int, bool) {
	i, ok := ix.pos[v.Key()]
	return i, ok
}

// MustLookup returns the position of the variant and panics if the variant is
// not part of the indexed population.  A miss means the caller projected onto
// a population the matrix was not built for, which is a programming error.
func (ix *Index[T]) MustLookup(v T) int {
	i, ok := ix.pos[v.Key()]
	if !ok {
		panic(fmt.Sprintf("lang: variant %q not in indexed population", v.Key()))
	}
	return i
}
