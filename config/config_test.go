package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/routega/parameter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routega.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func validConfig() Config {
	cfg := Default()
	cfg.Run.TargetCodes = []uint32{101}
	cfg.Data.Locations = "locations.json"
	cfg.Data.Distances = "distance.csv"
	cfg.Data.Spawns = "spawns.json"
	return cfg
}

func TestDefault_PersistsHistory(t *testing.T) {
	cfg := Default()
	if cfg.Store.Kind != "sqlite" || cfg.Store.Path == "" {
		t.Errorf("default store = %+v, expected sqlite with a path", cfg.Store)
	}
	if err := validConfig().Validate(); err != nil {
		t.Errorf("default store failed validation: %v", err)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[run]
id = "lumia"
seed = 7
steps = 5000
targets = ["Mistilteinn", "EOD Boots"]

[data]
locations = "map/object_locations.json"
distances = "map/distance.csv"
spawns = "data/spawns.json"
items = ["data/weapon.json", "data/armor.json"]

[store]
kind = "sqlite"
path = "runs.db"
`)

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Run.ID != "lumia" || cfg.Run.Seed != 7 || cfg.Run.Steps != 5000 {
		t.Errorf("run section not applied: %+v", cfg.Run)
	}
	if cfg.Run.ReportInterval != parameter.GAReportInterval {
		t.Errorf("report interval default lost: %d", cfg.Run.ReportInterval)
	}
	if len(cfg.Run.Exclude) != 1 || cfg.Run.Exclude[0] != parameter.IslandExcludedItem {
		t.Errorf("exclude default lost: %v", cfg.Run.Exclude)
	}
	if len(cfg.Data.Items) != 2 {
		t.Errorf("items = %v", cfg.Data.Items)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[run]\nstepz = 3\n")
	_, err := Load(path, false)
	if err == nil || !strings.Contains(err.Error(), "run.stepz") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(missing, true)
	if err != nil {
		t.Fatalf("optional load: %v", err)
	}
	if cfg.Run.Steps != parameter.GARunSteps {
		t.Errorf("expected defaults, got steps %d", cfg.Run.Steps)
	}

	if _, err := Load(missing, false); err == nil {
		t.Error("required load of a missing file should fail")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "[run\nsteps = ")
	if _, err := Load(path, false); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"ok", func(*Config) {}, ""},
		{"negative steps", func(c *Config) { c.Run.Steps = -1 }, "run.steps"},
		{"zero interval", func(c *Config) { c.Run.ReportInterval = 0 }, "run.report_interval"},
		{"negative pool", func(c *Config) { c.Run.MaxPool = -2 }, "run.max_pool"},
		{"no targets", func(c *Config) { c.Run.TargetCodes = nil }, "run.targets"},
		{"names need catalog", func(c *Config) { c.Run.Targets = []string{"Bow"} }, "data.items"},
		{"no distances", func(c *Config) { c.Data.Distances = "" }, "data.distances"},
		{"bad store", func(c *Config) { c.Store.Kind = "redis" }, "store.kind"},
		{"sqlite path", func(c *Config) { c.Store.Kind = "sqlite"; c.Store.Path = "" }, "store.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidatePrecompute(t *testing.T) {
	cfg := Default()
	err := cfg.ValidatePrecompute()
	if err == nil {
		t.Fatal("expected missing path errors")
	}
	for _, want := range []string{"precompute.walls", "precompute.locations", "precompute.output"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	cfg.Precompute.Walls = "walls.json"
	cfg.Precompute.Locations = "locations.json"
	cfg.Precompute.Output = "distance.csv"
	if err := cfg.ValidatePrecompute(); err != nil {
		t.Errorf("validate: %v", err)
	}
}
