package genetic

import (
	"math/rand/v2"
)

// --- Injected Strategy ---

// Strategy scores a chromosome. Lower cost is better.
// A single Strategy value is shared read-only by every organism of a lineage,
// so implementations must be safe to call repeatedly with the same genes
// and must not retain or modify the slice.
type Strategy[V comparable] interface {
	// EvaluateCost returns the total cost of the assignment
	EvaluateCost(genes []Gene[V]) int64
	// CheckFeasible reports whether the assignment satisfies the caller's constraints
	CheckFeasible(genes []Gene[V]) bool
}

// StrategyFuncs adapts a pair of plain functions to Strategy
type StrategyFuncs[V comparable] struct {
	Cost     func(genes []Gene[V]) int64
	Feasible func(genes []Gene[V]) bool
}

// EvaluateCost implements Strategy
func (s StrategyFuncs[V]) EvaluateCost(genes []Gene[V]) int64 {
	return s.Cost(genes)
}

// CheckFeasible implements Strategy, a nil Feasible accepts everything
func (s StrategyFuncs[V]) CheckFeasible(genes []Gene[V]) bool {
	if s.Feasible == nil {
		return true
	}
	return s.Feasible(genes)
}

// --- Function Types ---

// Factory produces one fresh, independently randomized organism per call
type Factory[V comparable] func(rng *rand.Rand) *Organism[V]

// --- Step Reporting ---

// Replacement identifies which survivor rule a step applied
type Replacement uint8

const (
	// ReplaceKeepAll keeps the better parent and both children (pool +1)
	ReplaceKeepAll Replacement = iota
	// ReplaceKeepParent keeps only the better parent (pool -1)
	ReplaceKeepParent
	// ReplaceKeepBoth keeps the better parent and the better child (pool +0)
	ReplaceKeepBoth
	// ReplaceInject keeps the better child and a fresh organism from the factory (pool +0)
	ReplaceInject

	replacementCount
)

var replacementNames = [replacementCount]string{
	ReplaceKeepAll:    "keep-all",
	ReplaceKeepParent: "keep-parent",
	ReplaceKeepBoth:   "keep-both",
	ReplaceInject:     "inject",
}

func (r Replacement) String() string {
	if r >= replacementCount {
		return "unknown"
	}
	return replacementNames[r]
}

// Delta is the net pool size change caused by the rule
func (r Replacement) Delta() int {
	switch r {
	case ReplaceKeepAll:
		return 1
	case ReplaceKeepParent:
		return -1
	default:
		return 0
	}
}

// StepOutcome describes a single steady-state step
type StepOutcome struct {
	Replacement Replacement
	// PoolBefore is the pool size after the floor top-up, before parents were drawn
	PoolBefore int
	// PoolAfter is the pool size once survivors were merged back (and the soft cap applied)
	PoolAfter int

	// Fitness of the ordered parents and children (P1 <= P2, C1 <= C2)
	P1, P2 int64
	C1, C2 int64
}
