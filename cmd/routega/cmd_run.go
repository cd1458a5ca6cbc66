package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lixenwraith/routega/config"
	"github.com/lixenwraith/routega/genetic"
	"github.com/lixenwraith/routega/genetic/persistence"
	"github.com/lixenwraith/routega/genetic/tracking"
	"github.com/lixenwraith/routega/island"
	"github.com/lixenwraith/routega/monitor"
	"github.com/lixenwraith/routega/parameter"
	"github.com/lixenwraith/routega/report"
	"github.com/lixenwraith/routega/route"
	"github.com/lixenwraith/routega/storage"
)

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", parameter.ConfigFile, "TOML settings file")
	debug := fs.Bool("debug", false, "write debug log to "+logDir)
	id := fs.String("id", "", "run id (default: timestamp)")
	seed := fs.Uint64("seed", 0, "engine seed, 0 for random")
	steps := fs.Int("steps", 0, "steady-state steps")
	reportEvery := fs.Int("report", 0, "steps between samples")
	maxPool := fs.Int("max-pool", 0, "soft pool cap, 0 for unbounded")
	watch := fs.Bool("watch", false, "show the live dashboard")
	plotPath := fs.String("plot", "", "write a convergence chart (PNG) to this path")
	resume := fs.Bool("resume", false, "continue from the run's checkpoint")
	storeKind := fs.String("store", "", "history backend: memory|sqlite")
	storePath := fs.String("db-path", "", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if logFile := setupLogging(*debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configPath, !flagSet(fs, "config"))
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "id":
			cfg.Run.ID = *id
		case "seed":
			cfg.Run.Seed = *seed
		case "steps":
			cfg.Run.Steps = *steps
		case "report":
			cfg.Run.ReportInterval = *reportEvery
		case "max-pool":
			cfg.Run.MaxPool = *maxPool
		case "watch":
			cfg.Run.Watch = *watch
		case "plot":
			cfg.Run.Plot = *plotPath
		case "resume":
			cfg.Run.Resume = *resume
		case "store":
			cfg.Store.Kind = *storeKind
		case "db-path":
			cfg.Store.Path = *storePath
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Run.ID == "" {
		cfg.Run.ID = time.Now().UTC().Format("20060102T150405Z")
	}

	isl, err := loadIsland(cfg.Data)
	if err != nil {
		return err
	}
	table, err := readFile(cfg.Data.Distances, island.LoadDistances)
	if err != nil {
		return err
	}
	var catalog *island.Catalog
	if len(cfg.Data.Items) > 0 {
		if catalog, err = loadCatalog(cfg.Data); err != nil {
			return err
		}
	}
	tally, err := buildTally(cfg.Run, catalog)
	if err != nil {
		return err
	}

	problem, err := route.NewProblem(isl, table, tally)
	if err != nil {
		return err
	}
	slog.Debug("problem built", "run", cfg.Run.ID, "items", len(tally), "genes", problem.Len(), "sites", len(problem.Sites()))

	store, err := storage.NewStore(cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := route.Options{
		RunID:          cfg.Run.ID,
		Steps:          cfg.Run.Steps,
		ReportInterval: cfg.Run.ReportInterval,
		Engine:         genetic.Config{Seed: cfg.Run.Seed, MaxPool: cfg.Run.MaxPool},
		Resume:         cfg.Run.Resume,
	}
	if cfg.Run.CheckpointDir != "" {
		opts.Checkpoints = persistence.NewManager(cfg.Run.CheckpointDir)
	}

	var dash *monitor.Dashboard
	dashDone := make(chan struct{})
	if cfg.Run.Watch {
		dash, err = monitor.Open("routega "+cfg.Run.ID, cancel)
		if err != nil {
			return err
		}
		go func() {
			dash.Run(runCtx)
			close(dashDone)
		}()
		opts.OnSample = dash.Push
	} else {
		close(dashDone)
		opts.OnSample = func(s tracking.Sample) {
			fmt.Fprintf(output, "[%d] %d, %d\n", s.Step, s.Best, s.PoolSize)
		}
	}

	started := time.Now().UTC()
	res, err := route.Solve(runCtx, problem, opts)
	if dash != nil {
		cancel()
		<-dashDone
		dash.Close()
	}
	if err != nil {
		return err
	}

	locations := make([]int, len(res.Stops))
	for i, s := range res.Stops {
		locations[i] = s.Location
	}
	record := storage.RunRecord{
		ID:          res.RunID,
		StartedAt:   started,
		Steps:       res.Steps,
		Seed:        cfg.Run.Seed,
		BestCost:    res.Cost,
		Feasible:    res.Feasible,
		Interrupted: res.Interrupted,
		Route:       locations,
		Elapsed:     res.Elapsed,
	}
	if err := store.SaveRun(ctx, record); err != nil {
		return err
	}
	if err := store.AppendSamples(ctx, res.RunID, res.Samples); err != nil {
		return err
	}

	if cfg.Run.Plot != "" {
		if err := report.SaveConvergence(res.Samples, "routega "+res.RunID, cfg.Run.Plot); err != nil {
			return err
		}
	}

	printResult(res, locations)
	return nil
}

func printResult(res route.Result, locations []int) {
	status := "complete"
	if res.Interrupted {
		status = "interrupted"
	}
	fmt.Fprintf(output, "run %s %s after %d steps in %s\n", res.RunID, status, res.Steps, res.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(output, "cost %d feasible %t\n", res.Cost, res.Feasible)

	parts := make([]string, len(locations))
	for i, loc := range locations {
		parts[i] = fmt.Sprint(loc)
	}
	fmt.Fprintf(output, "route [%s]\n", strings.Join(parts, ", "))

	rules := make([]string, 0, len(res.Rules))
	for _, r := range []genetic.Replacement{genetic.ReplaceKeepAll, genetic.ReplaceKeepParent, genetic.ReplaceKeepBoth, genetic.ReplaceInject} {
		rules = append(rules, fmt.Sprintf("%s=%d", r, res.Rules[r]))
	}
	fmt.Fprintf(output, "rules %s\n", strings.Join(rules, " "))
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
