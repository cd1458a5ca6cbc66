package genetic

import (
	"math/rand/v2"
	"testing"
)

// sumStrategy scores a chromosome as the sum of its values
type sumStrategy struct {
	feasible bool
}

func (s sumStrategy) EvaluateCost(genes []Gene[int]) int64 {
	var total int64
	for i := range genes {
		total += int64(genes[i].Value())
	}
	return total
}

func (s sumStrategy) CheckFeasible(genes []Gene[int]) bool {
	return s.feasible
}

// counterStrategy returns a strictly increasing cost on every evaluation
type counterStrategy struct {
	calls int64
}

func (s *counterStrategy) EvaluateCost(genes []Gene[int]) int64 {
	s.calls++
	return s.calls
}

func (s *counterStrategy) CheckFeasible(genes []Gene[int]) bool {
	return true
}

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func mustOrganism(t *testing.T, domains [][]int, values []int, strategy Strategy[int]) *Organism[int] {
	t.Helper()
	o, err := NewOrganismFromValues(domains, values, strategy)
	if err != nil {
		t.Fatalf("build organism: %v", err)
	}
	return o
}

func mustFactory(t *testing.T, domains [][]int, strategy Strategy[int]) Factory[int] {
	t.Helper()
	f, err := NewFactory(domains, strategy)
	if err != nil {
		t.Fatalf("build factory: %v", err)
	}
	return f
}

// rangeDomains builds n domains of the given size, consecutive domains overlapping by half
func rangeDomains(n, size int) [][]int {
	domains := make([][]int, n)
	for i := range domains {
		d := make([]int, size)
		for j := range d {
			d[j] = i*size/2 + j
		}
		domains[i] = d
	}
	return domains
}

func checkValid(t *testing.T, o *Organism[int]) {
	t.Helper()
	for i := range o.genes {
		if !o.genes[i].Valid() {
			t.Fatalf("gene %d value %d outside domain %v", i, o.genes[i].Value(), o.genes[i].Candidates())
		}
	}
}
