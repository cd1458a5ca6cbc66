package genetic

import (
	"errors"
	"testing"
)

func TestGene_EmptyDomain(t *testing.T) {
	_, err := NewGene([]int{})
	if err == nil {
		t.Fatal("expected error for empty domain")
	}

	var domainErr *EmptyDomainError
	if !errors.As(err, &domainErr) {
		t.Errorf("expected *EmptyDomainError, got %T", err)
	}
	if !errors.Is(err, ErrEmptyDomain) {
		t.Error("expected error to match ErrEmptyDomain")
	}
}

func TestGene_StartsAtFirstCandidate(t *testing.T) {
	g, err := NewGene([]int{7, 3, 9})
	if err != nil {
		t.Fatalf("new gene: %v", err)
	}
	if g.Value() != 7 {
		t.Errorf("expected initial value 7, got %d", g.Value())
	}
}

func TestGene_MutateStaysInDomain(t *testing.T) {
	candidates := []int{4, 8, 15, 16, 23, 42}
	g, _ := NewGene(candidates)
	rng := testRNG(1)

	seen := make(map[int]bool)
	for range 2000 {
		g.Mutate(rng)
		if !g.Valid() {
			t.Fatalf("value %d escaped domain", g.Value())
		}
		seen[g.Value()] = true
	}

	// Uniform draw over 6 values, 2000 times: every value shows up
	if len(seen) != len(candidates) {
		t.Errorf("expected all %d candidates drawn, saw %d", len(candidates), len(seen))
	}
}

func TestGene_SingleCandidateMutateIsNoop(t *testing.T) {
	g, _ := NewGene([]int{5})
	rng := testRNG(2)
	for range 10 {
		g.Mutate(rng)
	}
	if g.Value() != 5 {
		t.Errorf("expected 5, got %d", g.Value())
	}
}

func TestGene_CloneIsDeep(t *testing.T) {
	source := []int{1, 2, 3}
	g, _ := NewGene(source)
	source[0] = 99

	if g.Candidates()[0] != 1 {
		t.Error("gene domain aliases the constructor slice")
	}

	c := g.Clone()
	if err := c.Assign(3); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if g.Value() != 1 {
		t.Errorf("clone assignment leaked into original, got %d", g.Value())
	}

	exported := c.Candidates()
	exported[1] = -1
	if !c.SameDomain(&g) {
		t.Error("mutating Candidates() copy changed the domain")
	}
}

func TestGene_AssignRejectsForeignValue(t *testing.T) {
	g, _ := NewGene([]int{1, 2})
	err := g.Assign(3)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected invariant violation, got %v", err)
	}
	if g.Value() != 1 {
		t.Errorf("failed assign changed value to %d", g.Value())
	}
}

func TestGene_SameDomainIsStructural(t *testing.T) {
	a, _ := NewGene([]int{1, 2, 3})
	b, _ := NewGene([]int{1, 2, 3})
	c, _ := NewGene([]int{3, 2, 1})

	if !a.SameDomain(&b) {
		t.Error("equal contents should be the same domain")
	}
	if a.SameDomain(&c) {
		t.Error("order is part of the domain")
	}
}
