package genetic

import (
	"math/rand/v2"
	"slices"
)

// Gene is one assignable slot: a fixed candidate domain and the value currently drawn from it
type Gene[V comparable] struct {
	candidates []V
	value      V
}

// NewGene creates a gene holding the first candidate; the candidates are copied
func NewGene[V comparable](candidates []V) (Gene[V], error) {
	if len(candidates) == 0 {
		return Gene[V]{}, &EmptyDomainError{Slot: -1}
	}
	return Gene[V]{
		candidates: slices.Clone(candidates),
		value:      candidates[0],
	}, nil
}

// Value returns the current assignment
func (g *Gene[V]) Value() V {
	return g.value
}

// Candidates returns a copy of the domain
func (g *Gene[V]) Candidates() []V {
	return slices.Clone(g.candidates)
}

// DomainSize returns the number of candidates
func (g *Gene[V]) DomainSize() int {
	return len(g.candidates)
}

// SameDomain compares domains by content, not identity
func (g *Gene[V]) SameDomain(other *Gene[V]) bool {
	return slices.Equal(g.candidates, other.candidates)
}

// Valid reports whether the value is a member of the domain
func (g *Gene[V]) Valid() bool {
	return slices.Contains(g.candidates, g.value)
}

// Assign sets the value, which must be a member of the domain
func (g *Gene[V]) Assign(v V) error {
	if !slices.Contains(g.candidates, v) {
		return invariantf("assign", "value %v is not in the gene domain %v", v, g.candidates)
	}
	g.value = v
	return nil
}

// Mutate redraws the value uniformly over the whole domain, the current value included
func (g *Gene[V]) Mutate(rng *rand.Rand) {
	g.value = g.candidates[rng.IntN(len(g.candidates))]
}

// Clone deep-copies the domain
func (g *Gene[V]) Clone() Gene[V] {
	return Gene[V]{
		candidates: slices.Clone(g.candidates),
		value:      g.value,
	}
}
