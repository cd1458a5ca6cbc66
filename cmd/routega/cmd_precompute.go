package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lixenwraith/routega/config"
	"github.com/lixenwraith/routega/island"
	"github.com/lixenwraith/routega/navigation"
	"github.com/lixenwraith/routega/parameter"
)

func runPrecompute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("precompute", flag.ContinueOnError)
	configPath := fs.String("config", parameter.ConfigFile, "TOML settings file")
	debug := fs.Bool("debug", false, "write debug log to "+logDir)
	walls := fs.String("walls", "", "walls JSON (rows of 0/1)")
	locationsPath := fs.String("locations", "", "object locations JSON")
	out := fs.String("out", "", "distance CSV to write")
	method := fs.String("method", "", "astar|field")
	workers := fs.Int("workers", 0, "worker pool size, 0 for one per CPU")
	allowDisconnected := fs.Bool("allow-disconnected", false, "skip unreachable pairs instead of failing")
	quiet := fs.Bool("quiet", false, "no progress output")
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
		case "walls":
			cfg.Precompute.Walls = *walls
		case "locations":
			cfg.Precompute.Locations = *locationsPath
		case "out":
			cfg.Precompute.Output = *out
		case "method":
			cfg.Precompute.Method = *method
		case "workers":
			cfg.Precompute.Workers = *workers
		case "allow-disconnected":
			cfg.Precompute.AllowDisconnected = *allowDisconnected
		}
	})
	if err := cfg.ValidatePrecompute(); err != nil {
		return err
	}

	m, err := navigation.ParseMethod(cfg.Precompute.Method)
	if err != nil {
		return err
	}
	grid, err := readFile(cfg.Precompute.Walls, navigation.LoadWalls)
	if err != nil {
		return err
	}
	locations, err := readFile(cfg.Precompute.Locations, island.LoadLocations)
	if err != nil {
		return err
	}

	points := make([]island.Point, len(locations))
	for i, loc := range locations {
		points[i] = loc.Point()
	}

	opts := navigation.Options{
		Workers:           cfg.Precompute.Workers,
		Method:            m,
		AllowDisconnected: cfg.Precompute.AllowDisconnected,
	}
	if !*quiet {
		opts.Progress = progressPrinter(os.Stderr, time.Now())
	}

	rows, err := navigation.Precompute(ctx, grid, points, opts)
	if err != nil {
		return err
	}

	if err := writeFile(cfg.Precompute.Output, func(w io.Writer) error {
		return island.WriteDistances(w, rows)
	}); err != nil {
		return err
	}

	fmt.Fprintf(output, "wrote %d distances for %d locations to %s\n", len(rows), len(points), cfg.Precompute.Output)
	return nil
}

// progressPrinter redraws a one-line progress bar with an ETA
func progressPrinter(w io.Writer, start time.Time) func(done, total int) {
	const width = 40
	return func(done, total int) {
		filled := done * width / total
		bar := make([]byte, width)
		for i := range bar {
			if i < filled {
				bar[i] = '#'
			} else {
				bar[i] = '-'
			}
		}

		elapsed := time.Since(start)
		eta := time.Duration(0)
		if done > 0 {
			eta = elapsed * time.Duration(total-done) / time.Duration(done)
		}
		fmt.Fprintf(w, "\r[%s] %d/%d sources, ETA %s", bar, done, total, eta.Round(time.Second))
		if done == total {
			fmt.Fprintln(w)
		}
	}
}
