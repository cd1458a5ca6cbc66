// Package route turns island reference data into a slot-assignment search:
// one gene per required item copy, each choosing a location that supplies it,
// scored by the travel distance of visiting the chosen locations in chromosome order.
package route

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lixenwraith/routega/genetic"
	"github.com/lixenwraith/routega/island"
)

// Stop is one visited location of a route
type Stop struct {
	// Location indexes Island.Locations
	Location int
	Point    island.Point
	// Item is the requirement this stop satisfies
	Item island.ItemCode
}

// Problem is the immutable search space for one item tally; it implements genetic.Strategy[int].
// Gene values are site indices, positions into the filtered location list.
type Problem struct {
	isl   *island.Island
	tally map[island.ItemCode]int

	sites   []int             // Global location index per site
	slots   []island.ItemCode // Required item per gene
	domains [][]int
	dist    [][]int64 // Site to site travel cost
}

// NewProblem keeps the locations supplying at least one tallied item and builds
// one gene per required copy, in ascending item code order.
// Every pair of kept locations must be present in the distance table.
func NewProblem(isl *island.Island, table *island.DistanceTable, tally map[island.ItemCode]int) (*Problem, error) {
	p := &Problem{isl: isl, tally: make(map[island.ItemCode]int, len(tally))}
	for code, n := range tally {
		if n > 0 {
			p.tally[code] = n
		}
	}
	if len(p.tally) == 0 {
		return nil, fmt.Errorf("item tally is empty")
	}

	for i := range isl.Len() {
		if isl.SuppliesAny(i, p.tally) {
			p.sites = append(p.sites, i)
		}
	}

	for _, code := range slices.Sorted(maps.Keys(p.tally)) {
		var domain []int
		for s, loc := range p.sites {
			if isl.Supplies(loc, code) {
				domain = append(domain, s)
			}
		}
		if len(domain) == 0 {
			return nil, fmt.Errorf("item %d: %w", code, &genetic.EmptyDomainError{Slot: len(p.slots)})
		}
		for range p.tally[code] {
			p.slots = append(p.slots, code)
			p.domains = append(p.domains, domain)
		}
	}

	if len(p.slots) < genetic.MinCrossoverLength {
		return nil, &genetic.InvariantViolationError{
			Op:     "problem",
			Detail: fmt.Sprintf("%d required items, at least %d are needed to recombine routes", len(p.slots), genetic.MinCrossoverLength),
		}
	}

	p.dist = make([][]int64, len(p.sites))
	for a, la := range p.sites {
		p.dist[a] = make([]int64, len(p.sites))
		for b, lb := range p.sites {
			d, err := table.Distance(isl.Location(la).Point(), isl.Location(lb).Point())
			if err != nil {
				return nil, err
			}
			p.dist[a][b] = int64(d)
		}
	}

	return p, nil
}

// EvaluateCost sums the travel cost between consecutive stops
func (p *Problem) EvaluateCost(genes []genetic.Gene[int]) int64 {
	var sum int64
	for i := 1; i < len(genes); i++ {
		sum += p.dist[genes[i-1].Value()][genes[i].Value()]
	}
	return sum
}

// CheckFeasible reports whether the distinct visited locations hold enough copies of every item
func (p *Problem) CheckFeasible(genes []genetic.Gene[int]) bool {
	visited := make(map[int]struct{}, len(genes))
	for i := range genes {
		visited[genes[i].Value()] = struct{}{}
	}
	for code, need := range p.tally {
		have := 0
		for s := range visited {
			have += p.isl.Copies(p.sites[s], code)
		}
		if have < need {
			return false
		}
	}
	return true
}

// Len returns the chromosome length
func (p *Problem) Len() int {
	return len(p.slots)
}

// Sites returns the global location index of every site
func (p *Problem) Sites() []int {
	return slices.Clone(p.sites)
}

// Domains returns a copy of the per-gene candidate sites
func (p *Problem) Domains() [][]int {
	out := make([][]int, len(p.domains))
	for i, d := range p.domains {
		out[i] = slices.Clone(d)
	}
	return out
}

// Factory returns a factory of randomized organisms scored by this problem
func (p *Problem) Factory() (genetic.Factory[int], error) {
	return genetic.NewFactory(p.domains, genetic.Strategy[int](p))
}

// Route maps an organism onto the stops it visits, in order
func (p *Problem) Route(o *genetic.Organism[int]) []Stop {
	genes := o.Genes()
	stops := make([]Stop, len(genes))
	for i := range genes {
		loc := p.sites[genes[i].Value()]
		stops[i] = Stop{
			Location: loc,
			Point:    p.isl.Location(loc).Point(),
			Item:     p.itemFor(&genes[i]),
		}
	}
	return stops
}

// itemFor finds the requirement a gene serves by its domain, the first one when requirements share a domain
func (p *Problem) itemFor(g *genetic.Gene[int]) island.ItemCode {
	candidates := g.Candidates()
	for i, d := range p.domains {
		if slices.Equal(d, candidates) {
			return p.slots[i]
		}
	}
	return 0
}
