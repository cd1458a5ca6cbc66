package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/lixenwraith/routega/config"
	"github.com/lixenwraith/routega/island"
)

// readFile opens path and hands it to decode
func readFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := decode(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// writeFile creates path and hands it to encode
func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// loadIsland reads locations and spawns and deals the items
func loadIsland(data config.DataConfig) (*island.Island, error) {
	locations, err := readFile(data.Locations, island.LoadLocations)
	if err != nil {
		return nil, err
	}
	spawns, err := readFile(data.Spawns, island.LoadSpawns)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if data.IslandSeed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(data.IslandSeed, data.IslandSeed))
	}
	return island.NewIsland(locations, spawns, rng)
}

// loadCatalog reads the item lists and optional locale
func loadCatalog(data config.DataConfig) (*island.Catalog, error) {
	var items []island.Item
	for _, path := range data.Items {
		batch, err := readFile(path, func(r io.Reader) ([]island.Item, error) { return island.LoadItems(r) })
		if err != nil {
			return nil, err
		}
		items = append(items, batch...)
	}

	var locale map[island.ItemCode]string
	if data.Locale != "" {
		var err error
		if locale, err = readFile(data.Locale, island.LoadLocale); err != nil {
			return nil, err
		}
	}
	return island.NewCatalog(items, locale), nil
}

// buildTally resolves the configured targets into base item counts.
// Without a catalog, target codes are taken as base items needed once each.
func buildTally(run config.RunConfig, catalog *island.Catalog) (map[island.ItemCode]int, error) {
	exclude := make([]island.ItemCode, len(run.Exclude))
	for i, code := range run.Exclude {
		exclude[i] = island.ItemCode(code)
	}

	codes := make([]island.ItemCode, 0, len(run.Targets)+len(run.TargetCodes))
	for _, code := range run.TargetCodes {
		codes = append(codes, island.ItemCode(code))
	}

	if catalog == nil {
		tally := make(map[island.ItemCode]int, len(codes))
		for _, code := range codes {
			tally[code]++
		}
		for _, code := range exclude {
			delete(tally, code)
		}
		return tally, nil
	}

	for _, name := range run.Targets {
		code, err := catalog.FindByName(name)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return catalog.Tally(codes, exclude...)
}
