package navigation

import (
	"math"
	"slices"

	"github.com/lixenwraith/routega/island"
)

// Path is a walk across the grid and its step count
type Path struct {
	Cells []island.Point
	Cost  int
}

// heuristic is the straight-line distance rounded down
func heuristic(a, b island.Point) int {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return int(math.Sqrt(dx*dx + dy*dy))
}

// AStar searches 8-connected unit-cost moves from one point to another.
// The straight-line heuristic overestimates long diagonals, so on open ground
// the result can exceed the true step count; DistanceField is exact.
func AStar(g *Grid, from, to island.Point) (Path, error) {
	if g.Blocked(from.X, from.Y) || g.Blocked(to.X, to.Y) {
		return Path{}, &PathNotFoundError{From: from, To: to}
	}
	if from == to {
		return Path{Cells: []island.Point{from}}, nil
	}

	size := g.Width * g.Height
	cost := make([]int, size)
	for i := range cost {
		cost[i] = costUnreachable
	}
	parent := make([]int, size)
	closed := make([]bool, size)

	start, goal := g.index(from), g.index(to)
	cost[start] = 0
	parent[start] = -1

	open := make(minHeap, 0, 64)
	open.push(heapEntry{idx: start, dist: heuristic(from, to)})

	for len(open) > 0 {
		entry := open.pop()
		if closed[entry.idx] {
			continue
		}
		if entry.idx == goal {
			return Path{Cells: walkBack(g, parent, goal), Cost: cost[goal]}, nil
		}
		closed[entry.idx] = true

		cur := g.point(entry.idx)
		for _, d := range DirVectors {
			next := island.Point{X: cur.X + d[0], Y: cur.Y + d[1]}
			if g.Blocked(next.X, next.Y) {
				continue
			}
			nIdx := g.index(next)
			if closed[nIdx] {
				continue
			}
			if c := cost[entry.idx] + stepCost; c < cost[nIdx] {
				cost[nIdx] = c
				parent[nIdx] = entry.idx
				open.push(heapEntry{idx: nIdx, dist: c + heuristic(next, to)})
			}
		}
	}

	return Path{}, &PathNotFoundError{From: from, To: to}
}

func walkBack(g *Grid, parent []int, goal int) []island.Point {
	var cells []island.Point
	for idx := goal; idx >= 0; idx = parent[idx] {
		cells = append(cells, g.point(idx))
	}
	slices.Reverse(cells)
	return cells
}
