package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/lixenwraith/routega/island"
	"github.com/lixenwraith/routega/maze"
	"github.com/lixenwraith/routega/navigation"
	"github.com/lixenwraith/routega/parameter"
)

func runGenmap(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("genmap", flag.ContinueOnError)
	width := fs.Int("width", parameter.NavMapWidth, "map width (rounded down to odd)")
	height := fs.Int("height", parameter.NavMapHeight, "map height (rounded down to odd)")
	braiding := fs.Float64("braiding", parameter.NavMapBraiding, "cycle density 0..1")
	count := fs.Int("locations", parameter.NavMapLocations, "object locations to place")
	areas := fs.Int("areas", 4, "vertical area bands for item boxes")
	resourceEvery := fs.Int("resource-every", 5, "every n-th location is a fixed resource, 0 for none")
	seed := fs.Uint64("seed", 0, "generator seed, 0 for random")
	wallsOut := fs.String("walls-out", "walls.json", "walls JSON to write")
	locationsOut := fs.String("locations-out", "object_locations.json", "object locations JSON to write")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *braiding < 0 || *braiding > 1 {
		return fmt.Errorf("braiding %v is outside 0..1", *braiding)
	}

	res, err := maze.Generate(maze.Config{
		Width:         *width,
		Height:        *height,
		Braiding:      *braiding,
		Locations:     *count,
		Areas:         *areas,
		ResourceEvery: *resourceEvery,
		Seed:          *seed,
	})
	if err != nil {
		return err
	}

	if err := writeFile(*wallsOut, func(w io.Writer) error {
		return navigation.WriteWalls(w, res.Walls)
	}); err != nil {
		return err
	}
	if err := writeFile(*locationsOut, func(w io.Writer) error {
		return island.WriteLocations(w, res.Locations)
	}); err != nil {
		return err
	}

	fmt.Fprintf(output, "wrote %dx%d map to %s and %d locations to %s\n",
		len(res.Walls[0]), len(res.Walls), *wallsOut, len(res.Locations), *locationsOut)
	return nil
}
