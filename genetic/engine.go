package genetic

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/routega/parameter"
)

// --- Steady-State Engine ---

// Config holds engine parameters
type Config struct {
	// Seed for random number generation (0 for random seed)
	Seed uint64
	// MaxPool is a soft cap on the pool size, 0 for unbounded
	MaxPool int
}

// DefaultConfig returns the stock configuration: random seed, unbounded pool
func DefaultConfig() Config {
	return Config{
		Seed:    0,
		MaxPool: parameter.GAMaxPool,
	}
}

// Generation is a continuously evolving pool of organisms.
// There are no generational boundaries: every Step draws two parents,
// breeds two children and merges survivors back into the same pool.
// A Generation is not safe for concurrent use; parallel searches use one each.
type Generation[V comparable] struct {
	factory Factory[V]
	config  Config
	rng     *rand.Rand
	pool    []*Organism[V]
}

// NewGeneration creates a generation seeded with one organism from the factory
func NewGeneration[V comparable](factory Factory[V], config Config) (*Generation[V], error) {
	if factory == nil {
		return nil, invariantf("generation", "organism factory is required")
	}
	if config.MaxPool < 0 {
		return nil, invariantf("generation", "max pool %d is negative", config.MaxPool)
	}
	if config.MaxPool > 0 && config.MaxPool < parameter.GAMinPool+1 {
		// Keep-all adds one organism on top of the floor
		config.MaxPool = parameter.GAMinPool + 1
	}

	var rng *rand.Rand
	if config.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(config.Seed, config.Seed))
	}

	g := &Generation[V]{
		factory: factory,
		config:  config,
		rng:     rng,
	}

	first, err := g.spawn()
	if err != nil {
		return nil, err
	}
	g.pool = append(g.pool, first)

	return g, nil
}

// spawn asks the factory for one organism
func (g *Generation[V]) spawn() (*Organism[V], error) {
	o := g.factory(g.rng)
	if o == nil {
		return nil, invariantf("generation", "factory returned no organism")
	}
	return o, nil
}

// Step runs one select-breed-mutate-replace cycle
func (g *Generation[V]) Step() (StepOutcome, error) {
	var out StepOutcome

	for len(g.pool) < parameter.GAMinPool {
		o, err := g.spawn()
		if err != nil {
			return out, fmt.Errorf("step: %w", err)
		}
		g.pool = append(g.pool, o)
	}
	out.PoolBefore = len(g.pool)

	g.rng.Shuffle(len(g.pool), func(i, j int) {
		g.pool[i], g.pool[j] = g.pool[j], g.pool[i]
	})

	n := len(g.pool)
	p1, p2 := g.pool[n-1], g.pool[n-2]
	clear(g.pool[n-2:])
	g.pool = g.pool[:n-2]

	// Each organism is scored once per step; cost is pure so the cached values are exact
	f1, f2 := p1.Fitness(), p2.Fitness()
	if f1 > f2 {
		p1, p2 = p2, p1
		f1, f2 = f2, f1
	}

	c1, c2, err := p1.Crossover(p2, g.rng)
	if err != nil {
		g.pool = append(g.pool, p1, p2)
		return out, fmt.Errorf("step: %w", err)
	}

	if g.rng.Float64() < parameter.GAChildMutationProbability {
		c1.Mutate(g.rng)
	} else {
		c2.Mutate(g.rng)
	}

	fc1, fc2 := c1.Fitness(), c2.Fitness()
	if fc1 > fc2 {
		c1, c2 = c2, c1
		fc1, fc2 = fc2, fc1
	}

	rule := decideReplacement(f1, f2, fc1, fc2)
	switch rule {
	case ReplaceKeepAll:
		g.pool = append(g.pool, p1, c1, c2)
	case ReplaceKeepParent:
		g.pool = append(g.pool, p1)
	case ReplaceKeepBoth:
		g.pool = append(g.pool, p1, c1)
	case ReplaceInject:
		fresh, err := g.spawn()
		if err != nil {
			g.pool = append(g.pool, p1, c1)
			return out, fmt.Errorf("step: %w", err)
		}
		g.pool = append(g.pool, c1, fresh)
	}

	if g.config.MaxPool > 0 {
		g.enforceCap()
	}

	out.Replacement = rule
	out.PoolAfter = len(g.pool)
	out.P1, out.P2 = f1, f2
	out.C1, out.C2 = fc1, fc2
	return out, nil
}

// decideReplacement picks the survivor rule for ordered parents (p1 <= p2) and children (c1 <= c2).
// The rules are checked in priority order, exactly one applies.
func decideReplacement(p1, p2, c1, c2 int64) Replacement {
	switch {
	case c2 <= p1:
		// Both children at least as good as the better parent
		return ReplaceKeepAll
	case c1 > p2:
		// Even the better child is worse than the worse parent
		return ReplaceKeepParent
	case c1 > p1:
		// Better child lands between the parents
		return ReplaceKeepBoth
	default:
		return ReplaceInject
	}
}

// enforceCap drops the worst organisms, latest first among equals, until the cap holds
func (g *Generation[V]) enforceCap() {
	for len(g.pool) > g.config.MaxPool {
		worst := 0
		worstFitness := g.pool[0].Fitness()
		for i := 1; i < len(g.pool); i++ {
			if f := g.pool[i].Fitness(); f >= worstFitness {
				worst, worstFitness = i, f
			}
		}
		last := len(g.pool) - 1
		g.pool[worst] = g.pool[last]
		g.pool[last] = nil
		g.pool = g.pool[:last]
	}
}

// BestOrganism returns a copy of the lowest-cost organism, the first one found on ties
func (g *Generation[V]) BestOrganism() *Organism[V] {
	idx := g.bestIndex()
	if idx < 0 {
		return nil
	}
	return g.pool[idx].Clone()
}

func (g *Generation[V]) bestIndex() int {
	if len(g.pool) == 0 {
		return -1
	}
	best := 0
	bestFitness := g.pool[0].Fitness()
	for i := 1; i < len(g.pool); i++ {
		if f := g.pool[i].Fitness(); f < bestFitness {
			best, bestFitness = i, f
		}
	}
	return best
}

// Len returns the current pool size
func (g *Generation[V]) Len() int {
	return len(g.pool)
}

// Fitnesses returns the cost of every organism in pool order
func (g *Generation[V]) Fitnesses() []int64 {
	out := make([]int64, len(g.pool))
	for i, o := range g.pool {
		out[i] = o.Fitness()
	}
	return out
}

// Inject adds organisms to the pool, used to resume from a checkpoint.
// Every organism must share the lineage of the current pool.
func (g *Generation[V]) Inject(organisms ...*Organism[V]) error {
	for i, o := range organisms {
		if o == nil {
			return invariantf("inject", "organism %d is nil", i)
		}
		if len(g.pool) > 0 && !g.pool[0].SameLineage(o) {
			return invariantf("inject", "organism %d does not share the pool's gene domains", i)
		}
		g.pool = append(g.pool, o)
	}
	return nil
}
