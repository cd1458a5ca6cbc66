package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// inTempDir runs the test from an empty working directory and captures command output
func inTempDir(t *testing.T) *bytes.Buffer {
	t.Helper()
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir tempdir: %v", err)
	}

	var buf bytes.Buffer
	origOutput := output
	output = &buf
	t.Cleanup(func() {
		output = origOutput
		_ = os.Chdir(origWD)
	})
	return &buf
}

func TestRun_Usage(t *testing.T) {
	if err := run(context.Background(), nil); err == nil || !strings.Contains(err.Error(), "missing command") {
		t.Errorf("expected missing command error, got %v", err)
	}
	if err := run(context.Background(), []string{"fly"}); err == nil || !strings.Contains(err.Error(), "unknown command: fly") {
		t.Errorf("expected unknown command error, got %v", err)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	inTempDir(t)
	err := run(context.Background(), []string{"run", "-steps", "10"})
	if err == nil || !strings.Contains(err.Error(), "data.locations") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// writeMapData generates a map, its distance table and a spawn list of items 500..502 in every area
func writeMapData(t *testing.T, ctx context.Context) {
	t.Helper()
	if err := run(ctx, []string{"genmap", "-width", "41", "-height", "21", "-locations", "24",
		"-areas", "4", "-resource-every", "5", "-seed", "8"}); err != nil {
		t.Fatalf("genmap: %v", err)
	}
	if err := run(ctx, []string{"precompute", "-walls", "walls.json", "-locations", "object_locations.json",
		"-out", "distance.csv", "-method", "field", "-workers", "2", "-quiet"}); err != nil {
		t.Fatalf("precompute: %v", err)
	}

	var spawns strings.Builder
	spawns.WriteString("[")
	for area := 1; area <= 4; area++ {
		for item := 500; item <= 502; item++ {
			if spawns.Len() > 1 {
				spawns.WriteString(",")
			}
			fmt.Fprintf(&spawns, `{"areaCode":%d,"itemCode":%d,"dropCount":1}`, area, item)
		}
	}
	spawns.WriteString("]")
	if err := os.WriteFile("spawns.json", []byte(spawns.String()), 0644); err != nil {
		t.Fatalf("write spawns: %v", err)
	}
}

func TestRun_MapToRouteEndToEnd(t *testing.T) {
	out := inTempDir(t)
	ctx := context.Background()

	writeMapData(t, ctx)
	if !strings.Contains(out.String(), "wrote 552 distances for 24 locations") {
		t.Errorf("precompute output = %q", out.String())
	}

	settings := `
[run]
id = "e2e"
seed = 3
steps = 2000
report_interval = 500
target_codes = [301203, 500, 501, 502]
checkpoint_dir = "checkpoints"

[data]
locations = "object_locations.json"
distances = "distance.csv"
spawns = "spawns.json"
island_seed = 1

[store]
kind = "sqlite"
path = "runs.db"
`
	if err := os.WriteFile("routega.toml", []byte(settings), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out.Reset()
	if err := run(ctx, []string{"run", "-plot", "convergence.png"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"[0] ", "[2000] ", "run e2e complete after 2000 steps", "route [", "rules keep-all="} {
		if !strings.Contains(got, want) {
			t.Errorf("run output missing %q:\n%s", want, got)
		}
	}
	for _, file := range []string{"convergence.png", filepath.Join("checkpoints", "e2e.toml"), "runs.db"} {
		if _, err := os.Stat(file); err != nil {
			t.Errorf("expected %s: %v", file, err)
		}
	}

	out.Reset()
	if err := run(ctx, []string{"history"}); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out.String(), "e2e") {
		t.Errorf("history list = %q", out.String())
	}

	out.Reset()
	if err := run(ctx, []string{"history", "-id", "e2e"}); err != nil {
		t.Fatalf("history -id: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// Summary, header and samples at steps 0, 500, 1000, 1500, 2000
	if len(lines) != 7 {
		t.Errorf("expected 7 lines, got %d:\n%s", len(lines), out.String())
	}

	if err := run(ctx, []string{"history", "-id", "nope"}); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestRun_DefaultStoreKeepsHistory(t *testing.T) {
	out := inTempDir(t)
	ctx := context.Background()
	writeMapData(t, ctx)

	settings := `
[run]
id = "plain"
seed = 4
steps = 300
report_interval = 100
target_codes = [500, 501, 502, 500]
checkpoint_dir = ""

[data]
locations = "object_locations.json"
distances = "distance.csv"
spawns = "spawns.json"
island_seed = 1
`
	if err := os.WriteFile("routega.toml", []byte(settings), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := run(ctx, []string{"run"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat("routega.db"); err != nil {
		t.Errorf("expected default database: %v", err)
	}

	out.Reset()
	if err := run(ctx, []string{"history"}); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out.String(), "plain") {
		t.Errorf("history after default run = %q", out.String())
	}

	err := run(ctx, []string{"history", "-store", "memory"})
	if err == nil || !strings.Contains(err.Error(), "sqlite") {
		t.Errorf("expected memory store rejection, got %v", err)
	}
}

func TestRun_ShortRouteFailsBeforeSampling(t *testing.T) {
	out := inTempDir(t)
	ctx := context.Background()
	writeMapData(t, ctx)

	settings := `
[run]
id = "short"
steps = 100
target_codes = [500, 501, 502]

[data]
locations = "object_locations.json"
distances = "distance.csv"
spawns = "spawns.json"
island_seed = 1
`
	if err := os.WriteFile("routega.toml", []byte(settings), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out.Reset()
	err := run(ctx, []string{"run"})
	if err == nil || !strings.Contains(err.Error(), "problem:") {
		t.Fatalf("expected problem construction error, got %v", err)
	}
	if strings.Contains(err.Error(), "step") {
		t.Errorf("error raised from the step loop: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no samples before the failure, got %q", out.String())
	}
	if _, err := os.Stat("routega.db"); err == nil {
		t.Error("store opened before the problem was built")
	}
}
