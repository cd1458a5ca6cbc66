package tracking

import (
	"time"

	"github.com/lixenwraith/routega/genetic"
)

// Tracker accumulates step outcomes and samples pool statistics at a fixed interval
type Tracker struct {
	interval int
	steps    int
	rules    map[genetic.Replacement]int
	samples  []Sample
	start    time.Time
	sink     func(Sample)
}

// NewTracker creates a tracker sampling every interval steps; sink may be nil
func NewTracker(interval int, sink func(Sample)) *Tracker {
	if interval < 1 {
		interval = 1
	}
	return &Tracker{
		interval: interval,
		rules:    make(map[genetic.Replacement]int),
		start:    time.Now(),
		sink:     sink,
	}
}

// Observe records one step outcome
func (t *Tracker) Observe(out genetic.StepOutcome) {
	t.steps++
	t.rules[out.Replacement]++
}

// Due reports whether the last observed step lands on a sampling boundary
func (t *Tracker) Due() bool {
	return t.steps%t.interval == 0
}

// Record summarizes the pool, stores the sample and forwards it to the sink
func (t *Tracker) Record(fitnesses []int64) Sample {
	s := Summarize(t.steps, fitnesses)
	s.Elapsed = time.Since(t.start)
	t.samples = append(t.samples, s)
	if t.sink != nil {
		t.sink(s)
	}
	return s
}

// Steps returns the number of observed steps
func (t *Tracker) Steps() int {
	return t.steps
}

// Samples returns recorded samples in step order
func (t *Tracker) Samples() []Sample {
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// RuleCounts returns how often each replacement rule fired
func (t *Tracker) RuleCounts() map[genetic.Replacement]int {
	out := make(map[genetic.Replacement]int, len(t.rules))
	for k, v := range t.rules {
		out[k] = v
	}
	return out
}
