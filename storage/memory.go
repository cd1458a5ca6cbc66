package storage

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/lixenwraith/routega/genetic/tracking"
)

var errNotInitialized = errors.New("store is not initialized")

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]RunRecord
	samples     map[string][]tracking.Sample
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]RunRecord)
	s.samples = make(map[string][]tracking.Sample)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	if run.ID == "" {
		return errors.New("run id is required")
	}
	run.Route = slices.Clone(run.Route)
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return RunRecord{}, false, errNotInitialized
	}
	run, ok := s.runs[id]
	run.Route = slices.Clone(run.Route)
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	out := make([]RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		run.Route = slices.Clone(run.Route)
		out = append(out, run)
	}
	slices.SortFunc(out, newestFirst)
	return out, nil
}

func (s *MemoryStore) AppendSamples(_ context.Context, runID string, samples []tracking.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	merged := s.samples[runID]
	for _, sample := range samples {
		i, found := slices.BinarySearchFunc(merged, sample.Step, func(e tracking.Sample, step int) int {
			return e.Step - step
		})
		if found {
			merged[i] = sample
			continue
		}
		merged = slices.Insert(merged, i, sample)
	}
	s.samples[runID] = merged
	return nil
}

func (s *MemoryStore) GetSamples(_ context.Context, runID string) ([]tracking.Sample, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, false, errNotInitialized
	}
	samples := s.samples[runID]
	return slices.Clone(samples), len(samples) > 0, nil
}

// newestFirst orders by start time descending, then id
func newestFirst(a, b RunRecord) int {
	if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
		return c
	}
	if a.ID < b.ID {
		return -1
	}
	if a.ID > b.ID {
		return 1
	}
	return 0
}
