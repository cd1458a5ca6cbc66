package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/lixenwraith/routega/config"
	"github.com/lixenwraith/routega/parameter"
	"github.com/lixenwraith/routega/report"
	"github.com/lixenwraith/routega/storage"
)

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	configPath := fs.String("config", parameter.ConfigFile, "TOML settings file")
	storeKind := fs.String("store", "", "history backend: memory|sqlite")
	storePath := fs.String("db-path", "", "sqlite database path")
	id := fs.String("id", "", "show the samples of one run")
	plotPath := fs.String("plot", "", "with -id, write its convergence chart to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath, !flagSet(fs, "config"))
	if err != nil {
		return err
	}
	if flagSet(fs, "store") {
		cfg.Store.Kind = *storeKind
	}
	if flagSet(fs, "db-path") {
		cfg.Store.Path = *storePath
	}

	if cfg.Store.Kind == "" || cfg.Store.Kind == "memory" {
		return fmt.Errorf("history needs the sqlite store: the memory store keeps runs only while one command runs")
	}

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

	if *id == "" {
		return listRuns(ctx, store)
	}
	return showRun(ctx, store, *id, *plotPath)
}

func listRuns(ctx context.Context, store storage.Store) error {
	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(output, "no runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTEPS\tCOST\tFEASIBLE\tINTERRUPTED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%t\t%t\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Steps, r.BestCost, r.Feasible, r.Interrupted)
	}
	return tw.Flush()
}

func showRun(ctx context.Context, store storage.Store, id, plotPath string) error {
	run, ok, err := store.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s not found", id)
	}
	samples, _, err := store.GetSamples(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "run %s: cost %d after %d steps, route %v\n", run.ID, run.BestCost, run.Steps, run.Route)
	tw := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tBEST\tMEAN\tSTDDEV\tPOOL")
	for _, s := range samples {
		fmt.Fprintf(tw, "%d\t%d\t%.1f\t%.1f\t%d\n", s.Step, s.Best, s.Mean, s.StdDev, s.PoolSize)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if plotPath != "" {
		return report.SaveConvergence(samples, "routega "+run.ID, plotPath)
	}
	return nil
}
