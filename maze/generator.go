// Package maze generates synthetic obstacle maps with object locations for route experiments
package maze

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/routega/island"
)

// Cell values, matching the walls.json layout
const (
	Passage uint8 = 0
	Wall    uint8 = 1
)

// Kinds placed besides item boxes, cycled in order
var resourceKinds = []string{
	island.KindWater, island.KindStone, island.KindBranch, island.KindPotato,
}

type Config struct {
	Width, Height int

	// Braiding: 0 is a perfect maze (a tree), 1 removes every dead end it safely can
	Braiding float64

	// Locations is the number of object locations placed on open cells
	Locations int
	// Areas splits the map into vertical bands; each item box takes its band as area code
	Areas int
	// ResourceEvery makes every n-th location a fixed resource instead of an item box, 0 for none
	ResourceEvery int

	Seed uint64 // Optional (0 = Random)
}

type Result struct {
	Walls     [][]uint8
	Locations []island.Location
}

// Generate carves a maze, braids it and scatters locations over distinct room cells
func Generate(cfg Config) (Result, error) {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	var rng *rand.Rand
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	grid := make([][]uint8, rows)
	for y := range grid {
		grid[y] = make([]uint8, cols)
		for x := range grid[y] {
			grid[y][x] = Wall
		}
	}

	carve(grid, island.Point{X: 1, Y: 1}, rng)
	if cfg.Braiding > 0 {
		braid(grid, cfg.Braiding, rng)
	}

	locations, err := scatter(grid, cfg, rng)
	if err != nil {
		return Result{}, err
	}
	return Result{Walls: grid, Locations: locations}, nil
}

// carve runs a recursive backtracker over the odd cells, yielding a spanning tree
func carve(grid [][]uint8, start island.Point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	jumps := [4]island.Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

	stack := []island.Point{start}
	grid[start.Y][start.X] = Passage

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var open []island.Point
		for _, d := range jumps {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Wall {
				open = append(open, d)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := open[rng.IntN(len(open))]
		grid[cur.Y+d.Y/2][cur.X+d.X/2] = Passage
		next := island.Point{X: cur.X + d.X, Y: cur.Y + d.Y}
		grid[next.Y][next.X] = Passage
		stack = append(stack, next)
	}
}

// braid opens a wall at dead ends with the given probability, adding cycles
func braid(grid [][]uint8, probability float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	steps := [4]island.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] == Wall {
				continue
			}

			exits := 0
			for _, d := range steps {
				if grid[y+d.Y][x+d.X] == Passage {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			var candidates []island.Point
			for _, d := range steps {
				nx, ny := x+2*d.X, y+2*d.Y
				wx, wy := x+d.X, y+d.Y
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if grid[ny][nx] == Passage && grid[wy][wx] == Wall && safeToOpen(grid, wx, wy) {
					candidates = append(candidates, island.Point{X: wx, Y: wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.IntN(len(candidates))]
				grid[c.Y][c.X] = Passage
			}
		}
	}
}

// safeToOpen rejects openings that would create a 2x2 open plaza or an isolated pillar
func safeToOpen(grid [][]uint8, x, y int) bool {
	rows, cols := len(grid), len(grid[0])
	open := func(tx, ty int) bool {
		return tx >= 0 && tx < cols && ty >= 0 && ty < rows && grid[ty][tx] == Passage
	}

	for _, q := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if open(x+q[0], y) && open(x, y+q[1]) && open(x+q[0], y+q[1]) {
			return false
		}
	}

	steps := [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, d := range steps {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || grid[ny][nx] != Wall {
			continue
		}
		links := 0
		for _, d2 := range steps {
			mx, my := nx+d2[0], ny+d2[1]
			if mx == x && my == y {
				continue
			}
			if mx >= 0 && mx < cols && my >= 0 && my < rows && grid[my][mx] == Wall {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

// scatter picks distinct room cells for locations and labels them
func scatter(grid [][]uint8, cfg Config, rng *rand.Rand) ([]island.Location, error) {
	var rooms []island.Point
	for y := 1; y < len(grid); y += 2 {
		for x := 1; x < len(grid[y]); x += 2 {
			if grid[y][x] == Passage {
				rooms = append(rooms, island.Point{X: x, Y: y})
			}
		}
	}
	if cfg.Locations > len(rooms) {
		return nil, fmt.Errorf("%d locations requested, map has %d rooms", cfg.Locations, len(rooms))
	}

	areas := max(cfg.Areas, 1)
	cols := len(grid[0])

	locations := make([]island.Location, cfg.Locations)
	for i, k := range rng.Perm(len(rooms))[:cfg.Locations] {
		p := rooms[k]
		loc := island.Location{X: p.X, Y: p.Y, Kind: island.KindItem, AreaCode: 1 + p.X*areas/cols}
		if cfg.ResourceEvery > 0 && (i+1)%cfg.ResourceEvery == 0 {
			loc.Kind = resourceKinds[(i/cfg.ResourceEvery)%len(resourceKinds)]
			loc.AreaCode = 0
		}
		locations[i] = loc
	}
	return locations, nil
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
