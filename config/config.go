// Package config loads run settings from TOML with typed defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/routega/parameter"
)

// Config is the full settings file
type Config struct {
	Run        RunConfig        `toml:"run"`
	Data       DataConfig       `toml:"data"`
	Store      StoreConfig      `toml:"store"`
	Precompute PrecomputeConfig `toml:"precompute"`
}

// RunConfig controls a solve
type RunConfig struct {
	ID             string `toml:"id"`
	Seed           uint64 `toml:"seed"`
	Steps          int    `toml:"steps"`
	ReportInterval int    `toml:"report_interval"`
	MaxPool        int    `toml:"max_pool"`

	// Targets are resolved through the item catalog; TargetCodes skip the lookup
	Targets     []string `toml:"targets"`
	TargetCodes []uint32 `toml:"target_codes"`
	Exclude     []uint32 `toml:"exclude"`

	CheckpointDir string `toml:"checkpoint_dir"`
	Resume        bool   `toml:"resume"`
	Plot          string `toml:"plot"`
	Watch         bool   `toml:"watch"`
}

// DataConfig locates the reference data files
type DataConfig struct {
	Locations string   `toml:"locations"`
	Distances string   `toml:"distances"`
	Spawns    string   `toml:"spawns"`
	Items     []string `toml:"items"`
	Locale    string   `toml:"locale"`
	// IslandSeed fixes the item deal, 0 for random
	IslandSeed uint64 `toml:"island_seed"`
}

// StoreConfig selects the run history backend
type StoreConfig struct {
	Kind string `toml:"kind"`
	Path string `toml:"path"`
}

// PrecomputeConfig controls distance table generation
type PrecomputeConfig struct {
	Walls             string `toml:"walls"`
	Locations         string `toml:"locations"`
	Output            string `toml:"output"`
	Method            string `toml:"method"`
	Workers           int    `toml:"workers"`
	AllowDisconnected bool   `toml:"allow_disconnected"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Run: RunConfig{
			Steps:          parameter.GARunSteps,
			ReportInterval: parameter.GAReportInterval,
			MaxPool:        parameter.GAMaxPool,
			Exclude:        []uint32{parameter.IslandExcludedItem},
			CheckpointDir:  parameter.CheckpointPath,
		},
		Store: StoreConfig{
			Kind: parameter.StoreKind,
			Path: parameter.StorePath,
		},
		Precompute: PrecomputeConfig{
			Method:  "astar",
			Workers: parameter.NavPrecomputeWorkers,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when optional is set.
// Unknown keys are rejected.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// Validate checks the settings needed by a solve
func (c Config) Validate() error {
	var errs []error

	if c.Run.Steps < 0 {
		errs = append(errs, fmt.Errorf("run.steps must not be negative"))
	}
	if c.Run.ReportInterval <= 0 {
		errs = append(errs, fmt.Errorf("run.report_interval must be positive"))
	}
	if c.Run.MaxPool < 0 {
		errs = append(errs, fmt.Errorf("run.max_pool must not be negative"))
	}
	if len(c.Run.Targets) == 0 && len(c.Run.TargetCodes) == 0 {
		errs = append(errs, fmt.Errorf("run.targets or run.target_codes is required"))
	}
	if len(c.Run.Targets) > 0 && len(c.Data.Items) == 0 {
		errs = append(errs, fmt.Errorf("data.items is required to resolve run.targets"))
	}

	for _, f := range [...]struct{ name, value string }{
		{"data.locations", c.Data.Locations},
		{"data.distances", c.Data.Distances},
		{"data.spawns", c.Data.Spawns},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		}
	}

	errs = append(errs, c.Store.validate())
	return errors.Join(errs...)
}

func (s StoreConfig) validate() error {
	switch s.Kind {
	case "", "memory":
		return nil
	case "sqlite":
		if s.Path == "" {
			return fmt.Errorf("store.path is required for sqlite")
		}
		return nil
	default:
		return fmt.Errorf("store.kind %q is not memory or sqlite", s.Kind)
	}
}

// ValidatePrecompute checks the settings needed to build a distance table
func (c Config) ValidatePrecompute() error {
	var errs []error
	if c.Precompute.Walls == "" {
		errs = append(errs, fmt.Errorf("precompute.walls is required"))
	}
	if c.Precompute.Locations == "" {
		errs = append(errs, fmt.Errorf("precompute.locations is required"))
	}
	if c.Precompute.Output == "" {
		errs = append(errs, fmt.Errorf("precompute.output is required"))
	}
	if c.Precompute.Workers < 0 {
		errs = append(errs, fmt.Errorf("precompute.workers must not be negative"))
	}
	return errors.Join(errs...)
}
