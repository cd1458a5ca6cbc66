package tracking

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Sample is a snapshot of pool statistics at a given step
type Sample struct {
	Step     int           `json:"step" toml:"step"`
	Best     int64         `json:"best" toml:"best"`
	Worst    int64         `json:"worst" toml:"worst"`
	Mean     float64       `json:"mean" toml:"mean"`
	StdDev   float64       `json:"std_dev" toml:"std_dev"`
	PoolSize int           `json:"pool_size" toml:"pool_size"`
	Elapsed  time.Duration `json:"elapsed" toml:"elapsed"`
}

// Summarize computes pool statistics from organism costs
func Summarize(step int, fitnesses []int64) Sample {
	s := Sample{Step: step, PoolSize: len(fitnesses)}
	if len(fitnesses) == 0 {
		return s
	}

	s.Best = slices.Min(fitnesses)
	s.Worst = slices.Max(fitnesses)

	values := make([]float64, len(fitnesses))
	for i, f := range fitnesses {
		values[i] = float64(f)
	}
	if len(values) == 1 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}
