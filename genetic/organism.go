package genetic

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// Organism is a chromosome of genes bound to the strategy that scores it
type Organism[V comparable] struct {
	genes    []Gene[V]
	strategy Strategy[V]
}

// NewOrganism binds genes to a strategy; the genes are taken over, not copied
func NewOrganism[V comparable](genes []Gene[V], strategy Strategy[V]) (*Organism[V], error) {
	if strategy == nil {
		return nil, invariantf("organism", "strategy is required")
	}
	if len(genes) == 0 {
		return nil, invariantf("organism", "chromosome has no genes")
	}
	for i := range genes {
		if len(genes[i].candidates) == 0 {
			return nil, &EmptyDomainError{Slot: i}
		}
	}
	return &Organism[V]{genes: genes, strategy: strategy}, nil
}

// Fitness recomputes the cost of the current assignment
func (o *Organism[V]) Fitness() int64 {
	return o.strategy.EvaluateCost(o.genes)
}

// Feasible evaluates the feasibility predicate; replacement never consults it
func (o *Organism[V]) Feasible() bool {
	return o.strategy.CheckFeasible(o.genes)
}

// Len returns the chromosome length
func (o *Organism[V]) Len() int {
	return len(o.genes)
}

// Values returns the assignment in chromosome order
func (o *Organism[V]) Values() []V {
	values := make([]V, len(o.genes))
	for i := range o.genes {
		values[i] = o.genes[i].value
	}
	return values
}

// Genes returns a deep copy of the chromosome
func (o *Organism[V]) Genes() []Gene[V] {
	out := make([]Gene[V], len(o.genes))
	for i := range o.genes {
		out[i] = o.genes[i].Clone()
	}
	return out
}

// Clone copies the chromosome; the strategy is shared
func (o *Organism[V]) Clone() *Organism[V] {
	return &Organism[V]{genes: o.Genes(), strategy: o.strategy}
}

// SameLineage reports whether both chromosomes hold the same multiset of domains
func (o *Organism[V]) SameLineage(other *Organism[V]) bool {
	if len(o.genes) != len(other.genes) {
		return false
	}
	used := make([]bool, len(other.genes))
	for i := range o.genes {
		found := false
		for j := range other.genes {
			if !used[j] && o.genes[i].SameDomain(&other.genes[j]) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MinCrossoverLength is the shortest chromosome with a non-empty cut count range
const MinCrossoverLength = 4

// Crossover produces two children by exchanging random segments between o and other.
// Each exchange is slot-preserving: the incoming value lands on whichever child gene
// carries the same domain, which is swapped into position first, so a child never
// gains or loses a domain. With repeated identical domains the first match is taken.
func (o *Organism[V]) Crossover(other *Organism[V], rng *rand.Rand) (*Organism[V], *Organism[V], error) {
	n := len(o.genes)
	if len(other.genes) != n {
		return nil, nil, invariantf("crossover", "chromosome lengths differ: %d and %d", n, len(other.genes))
	}
	// Cut count is drawn from [1, n/2)
	if n < MinCrossoverLength {
		return nil, nil, invariantf("crossover", "chromosome length %d leaves no cut count in [1, %d)", n, n/2)
	}

	c1 := o.Clone()
	c2 := other.Clone()

	cuts := 1 + rng.IntN(n/2-1)
	for range cuts {
		a := rng.IntN(n)
		b := a + rng.IntN(n-a)
		if err := exchangeSegment(c1, c2, a, b); err != nil {
			return nil, nil, err
		}
	}

	return c1, c2, nil
}

// exchangeSegment swaps the values at every position of [a, b] between c1 and c2
func exchangeSegment[V comparable](c1, c2 *Organism[V], a, b int) error {
	for x := a; x <= b; x++ {
		// Snapshots share the immutable domain slices
		g1 := c1.genes[x]
		g2 := c2.genes[x]

		if err := c1.applyGene(x, &g2); err != nil {
			return err
		}
		if err := c2.applyGene(x, &g1); err != nil {
			return err
		}
	}
	return nil
}

// applyGene moves the first gene sharing incoming's domain to position x and gives it incoming's value
func (o *Organism[V]) applyGene(x int, incoming *Gene[V]) error {
	j := slices.IndexFunc(o.genes, func(g Gene[V]) bool {
		return g.SameDomain(incoming)
	})
	if j < 0 {
		return invariantf("crossover", "no gene matches the domain %v arriving at position %d", incoming.candidates, x)
	}

	o.genes[x], o.genes[j] = o.genes[j], o.genes[x]
	o.genes[x].value = incoming.value
	return nil
}

// Mutate redraws a uniformly sized set of distinct genes, possibly none
func (o *Organism[V]) Mutate(rng *rand.Rand) {
	n := len(o.genes)
	amount := rng.IntN(n)
	if amount == 0 {
		return
	}

	for _, i := range rng.Perm(n)[:amount] {
		o.genes[i].Mutate(rng)
	}
}

func (o *Organism[V]) String() string {
	var b strings.Builder
	b.WriteString("Organism{genes: [")
	for i := range o.genes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, o.genes[i].value)
	}
	b.WriteString("]}")
	return b.String()
}
