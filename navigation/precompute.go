package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/alitto/pond"

	"github.com/lixenwraith/routega/island"
	"github.com/lixenwraith/routega/parameter"
)

// Method selects how pairwise distances are measured
type Method int

const (
	// MethodAStar runs one A* search per ordered pair
	MethodAStar Method = iota
	// MethodField sweeps one distance field per source
	MethodField
)

func (m Method) String() string {
	switch m {
	case MethodAStar:
		return "astar"
	case MethodField:
		return "field"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts the String form of a Method
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "astar", "a*", "":
		return MethodAStar, nil
	case "field", "dijkstra":
		return MethodField, nil
	}
	return 0, fmt.Errorf("unknown distance method %q", s)
}

// Options tunes Precompute
type Options struct {
	// Workers is the pool size, 0 for one per CPU
	Workers int
	Method  Method
	// AllowDisconnected skips unreachable pairs instead of failing
	AllowDisconnected bool
	// Progress, if set, is called from the collecting goroutine after each finished source
	Progress func(done, total int)
}

type sourceRows struct {
	source int
	rows   []island.DistanceRow
}

// Precompute measures the distance between every ordered pair of distinct points.
// Each source is one task on a worker pool; finished rows are fanned in and returned
// grouped by source in input order.
func Precompute(ctx context.Context, g *Grid, points []island.Point, opts Options) ([]island.DistanceRow, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = parameter.NavPrecomputeWorkers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := pond.New(workers, parameter.NavPrecomputeQueue)
	defer pool.StopAndWait()

	group, gctx := pool.GroupContext(ctx)
	results := make(chan sourceRows, parameter.NavRowBuffer)

	var skipped atomic.Int64
	var waitErr error
	go func() {
		for i := range points {
			group.Submit(func() error {
				rows, err := distancesFrom(gctx, g, points, i, opts, &skipped)
				if err != nil {
					return err
				}
				select {
				case results <- sourceRows{source: i, rows: rows}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		waitErr = group.Wait()
		close(results)
	}()

	bySource := make([][]island.DistanceRow, len(points))
	done := 0
	for r := range results {
		bySource[r.source] = r.rows
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(points))
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []island.DistanceRow
	for _, batch := range bySource {
		rows = append(rows, batch...)
	}

	slog.Debug("distance precompute finished",
		"points", len(points), "rows", len(rows), "skipped", skipped.Load(),
		"method", opts.Method.String(), "workers", workers)
	return rows, nil
}

func distancesFrom(ctx context.Context, g *Grid, points []island.Point, i int, opts Options, skipped *atomic.Int64) ([]island.DistanceRow, error) {
	from := points[i]
	rows := make([]island.DistanceRow, 0, len(points)-1)

	var field *DistanceField
	if opts.Method == MethodField {
		field = NewDistanceField(g)
		field.Compute(g, from)
	}

	for j, to := range points {
		if i == j {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var cost int
		var err error
		if field != nil {
			if cost = field.Distance(to); cost < 0 {
				err = &PathNotFoundError{From: from, To: to}
			}
		} else {
			var p Path
			p, err = AStar(g, from, to)
			cost = p.Cost
		}

		if err != nil {
			if opts.AllowDisconnected && errors.Is(err, ErrPathNotFound) {
				skipped.Add(1)
				continue
			}
			return nil, err
		}
		rows = append(rows, island.DistanceRow{From: from, To: to, Distance: cost})
	}
	return rows, nil
}
