// Package storage records finished runs and their sampled statistics
package storage

import (
	"context"
	"time"

	"github.com/lixenwraith/routega/genetic/tracking"
)

// RunRecord summarizes one solve
type RunRecord struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	Steps       int       `json:"steps"`
	Seed        uint64    `json:"seed"`
	BestCost    int64     `json:"best_cost"`
	Feasible    bool      `json:"feasible"`
	Interrupted bool      `json:"interrupted"`
	// Route lists the visited location indices in order
	Route   []int         `json:"route"`
	Elapsed time.Duration `json:"elapsed"`
}

// Store defines persistence operations for run history
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	// ListRuns returns every run, newest first
	ListRuns(ctx context.Context) ([]RunRecord, error)
	AppendSamples(ctx context.Context, runID string, samples []tracking.Sample) error
	GetSamples(ctx context.Context, runID string) ([]tracking.Sample, bool, error)
}
