package route

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lixenwraith/routega/genetic"
	"github.com/lixenwraith/routega/genetic/persistence"
	"github.com/lixenwraith/routega/genetic/tracking"
	"github.com/lixenwraith/routega/parameter"
)

// cancelCheckInterval is how many steps run between context checks
const cancelCheckInterval = 256

// Options configures a Solve run
type Options struct {
	RunID string
	// Steps is the number of steady-state steps after the initial pool
	Steps int
	// ReportInterval samples pool statistics every n steps
	ReportInterval int
	Engine         genetic.Config

	// Checkpoints, when set, receives the best organism at every sample and at the end
	Checkpoints *persistence.Manager
	// Resume injects the stored best organism of RunID before stepping
	Resume bool

	// OnSample is called synchronously for every sample, the step-0 sample included
	OnSample func(tracking.Sample)
}

// DefaultOptions mirrors the stock run length and reporting cadence
func DefaultOptions(runID string) Options {
	return Options{
		RunID:          runID,
		Steps:          parameter.GARunSteps,
		ReportInterval: parameter.GAReportInterval,
		Engine:         genetic.DefaultConfig(),
	}
}

// Result is the outcome of a Solve run
type Result struct {
	RunID    string
	Best     *genetic.Organism[int]
	Cost     int64
	Feasible bool
	Stops    []Stop

	Steps       int
	Interrupted bool
	Samples     []tracking.Sample
	Rules       map[genetic.Replacement]int
	Elapsed     time.Duration
}

// Solve evolves a generation for the problem until the step budget runs out or ctx is cancelled.
// Cancellation is not an error: the best route found so far is returned with Interrupted set.
func Solve(ctx context.Context, p *Problem, opts Options) (Result, error) {
	if opts.Steps < 0 {
		return Result{}, fmt.Errorf("negative step count %d", opts.Steps)
	}
	if opts.ReportInterval <= 0 {
		opts.ReportInterval = parameter.GAReportInterval
	}

	factory, err := p.Factory()
	if err != nil {
		return Result{}, err
	}
	gen, err := genetic.NewGeneration(factory, opts.Engine)
	if err != nil {
		return Result{}, err
	}

	if opts.Resume && opts.Checkpoints != nil && opts.Checkpoints.Exists(opts.RunID) {
		dto, err := opts.Checkpoints.Load(opts.RunID)
		if err != nil {
			return Result{}, err
		}
		o, err := dto.ToOrganism(p)
		if err != nil {
			return Result{}, fmt.Errorf("resume %s: %w", opts.RunID, err)
		}
		if err := gen.Inject(o); err != nil {
			return Result{}, fmt.Errorf("resume %s: %w", opts.RunID, err)
		}
		slog.Debug("resumed from checkpoint", "run", opts.RunID, "step", dto.Step, "fitness", dto.Fitness)
	}

	start := time.Now()
	tracker := tracking.NewTracker(opts.ReportInterval, opts.OnSample)
	tracker.Record(gen.Fitnesses())

	res := Result{RunID: opts.RunID}
	for step := 1; step <= opts.Steps; step++ {
		if step%cancelCheckInterval == 0 && ctx.Err() != nil {
			res.Interrupted = true
			break
		}

		out, err := gen.Step()
		if err != nil {
			return Result{}, fmt.Errorf("run %s after %d steps: %w", opts.RunID, step-1, err)
		}
		tracker.Observe(out)

		if tracker.Due() {
			s := tracker.Record(gen.Fitnesses())
			if err := checkpoint(opts, s.Step, gen); err != nil {
				return Result{}, err
			}
		}
	}

	if err := checkpoint(opts, tracker.Steps(), gen); err != nil {
		return Result{}, err
	}

	best := gen.BestOrganism()
	res.Best = best
	res.Cost = best.Fitness()
	res.Feasible = best.Feasible()
	res.Stops = p.Route(best)
	res.Steps = tracker.Steps()
	res.Samples = tracker.Samples()
	res.Rules = tracker.RuleCounts()
	res.Elapsed = time.Since(start)
	return res, nil
}

func checkpoint(opts Options, step int, gen *genetic.Generation[int]) error {
	if opts.Checkpoints == nil {
		return nil
	}
	dto := persistence.FromOrganism(opts.RunID, step, gen.Len(), gen.BestOrganism())
	if err := opts.Checkpoints.Save(dto); err != nil {
		return fmt.Errorf("checkpoint step %d: %w", step, err)
	}
	return nil
}
