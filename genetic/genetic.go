// Package genetic provides a steady-state genetic search over slot assignments.
// 1. A chromosome is an ordered list of genes, each with a fixed candidate domain
// 2. Crossover exchanges values while keeping exactly one gene per domain
// 3. The pool has no generations and no fixed size; each step merges survivors back
// 4. Cost and feasibility come from a caller-supplied Strategy; the engine knows nothing of the problem
package genetic

import (
	"math/rand/v2"
)

// NewFactory returns a factory that clones the given domains and randomizes every gene.
// Domains are validated once here, so the factory itself cannot fail.
func NewFactory[V comparable](domains [][]V, strategy Strategy[V]) (Factory[V], error) {
	if strategy == nil {
		return nil, invariantf("factory", "strategy is required")
	}
	if len(domains) == 0 {
		return nil, invariantf("factory", "no gene domains")
	}

	template := make([]Gene[V], len(domains))
	for i, candidates := range domains {
		gene, err := NewGene(candidates)
		if err != nil {
			return nil, &EmptyDomainError{Slot: i}
		}
		template[i] = gene
	}

	return func(rng *rand.Rand) *Organism[V] {
		genes := make([]Gene[V], len(template))
		for i := range template {
			genes[i] = template[i].Clone()
			genes[i].Mutate(rng)
		}
		return &Organism[V]{genes: genes, strategy: strategy}
	}, nil
}

// NewOrganismFromValues rebuilds an organism from domains and a matching assignment
func NewOrganismFromValues[V comparable](domains [][]V, values []V, strategy Strategy[V]) (*Organism[V], error) {
	if len(domains) != len(values) {
		return nil, invariantf("organism", "%d values for %d domains", len(values), len(domains))
	}

	genes := make([]Gene[V], len(domains))
	for i, candidates := range domains {
		gene, err := NewGene(candidates)
		if err != nil {
			return nil, &EmptyDomainError{Slot: i}
		}
		if err := gene.Assign(values[i]); err != nil {
			return nil, err
		}
		genes[i] = gene
	}

	return NewOrganism(genes, strategy)
}
