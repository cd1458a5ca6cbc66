package tracking

import (
	"math"
	"testing"

	"github.com/lixenwraith/routega/genetic"
)

func TestSummarize_Statistics(t *testing.T) {
	s := Summarize(10, []int64{4, 8, 6, 2})

	if s.Step != 10 {
		t.Errorf("expected step 10, got %d", s.Step)
	}
	if s.Best != 2 || s.Worst != 8 {
		t.Errorf("expected best 2 worst 8, got %d %d", s.Best, s.Worst)
	}
	if s.Mean != 5 {
		t.Errorf("expected mean 5, got %v", s.Mean)
	}
	// Sample standard deviation of {2,4,6,8}
	want := math.Sqrt(20.0 / 3.0)
	if math.Abs(s.StdDev-want) > 1e-9 {
		t.Errorf("expected std dev %v, got %v", want, s.StdDev)
	}
	if s.PoolSize != 4 {
		t.Errorf("expected pool size 4, got %d", s.PoolSize)
	}
}

func TestSummarize_SingleAndEmpty(t *testing.T) {
	one := Summarize(1, []int64{7})
	if one.Best != 7 || one.Mean != 7 || one.StdDev != 0 {
		t.Errorf("unexpected single-member summary: %+v", one)
	}

	empty := Summarize(2, nil)
	if empty.PoolSize != 0 || empty.Best != 0 {
		t.Errorf("unexpected empty summary: %+v", empty)
	}
}

func TestTracker_SamplesAtInterval(t *testing.T) {
	var forwarded []Sample
	tr := NewTracker(3, func(s Sample) { forwarded = append(forwarded, s) })

	for i := range 10 {
		rule := genetic.ReplaceKeepBoth
		if i%2 == 0 {
			rule = genetic.ReplaceInject
		}
		tr.Observe(genetic.StepOutcome{Replacement: rule})
		if tr.Due() {
			tr.Record([]int64{int64(10 - i), 20})
		}
	}

	samples := tr.Samples()
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0].Step != 3 || samples[2].Step != 9 {
		t.Errorf("unexpected sample steps %d..%d", samples[0].Step, samples[2].Step)
	}
	if len(forwarded) != 3 {
		t.Errorf("expected sink to receive 3 samples, got %d", len(forwarded))
	}

	counts := tr.RuleCounts()
	if counts[genetic.ReplaceInject] != 5 || counts[genetic.ReplaceKeepBoth] != 5 {
		t.Errorf("unexpected rule counts: %v", counts)
	}
	if tr.Steps() != 10 {
		t.Errorf("expected 10 steps, got %d", tr.Steps())
	}
}

func TestTracker_ZeroIntervalSamplesEveryStep(t *testing.T) {
	tr := NewTracker(0, nil)
	tr.Observe(genetic.StepOutcome{})
	if !tr.Due() {
		t.Error("expected every step to be due with a non-positive interval")
	}
}
