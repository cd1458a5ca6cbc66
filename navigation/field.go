package navigation

import (
	"slices"

	"github.com/lixenwraith/routega/island"
)

// Direction constants for the distance field
// Index into DirVectors: N=0, NE=1, E=2, SE=3, S=4, SW=5, W=6, NW=7
const (
	DirNone   int8 = -1 // Blocked or unreachable
	DirSource int8 = -2 // At source cell
	DirN      int8 = 0
	DirNE     int8 = 1
	DirE      int8 = 2
	DirSE     int8 = 3
	DirS      int8 = 4
	DirSW     int8 = 5
	DirW      int8 = 6
	DirNW     int8 = 7
	DirCount  int8 = 8
)

// Direction vectors matching DirN..DirNW
var DirVectors = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Every move costs one step, diagonals included
const (
	stepCost        = 1
	costUnreachable = 1<<30 - 1
)

// DistanceField holds step counts from one source to every cell of a grid
type DistanceField struct {
	Width, Height int
	Directions    []int8 // Per-cell step back toward the source, DirNone if unreachable
	Distances     []int  // Steps from the source

	Source island.Point

	heap minHeap
}

// NewDistanceField creates an empty field sized for the grid
func NewDistanceField(g *Grid) *DistanceField {
	size := g.Width * g.Height
	return &DistanceField{
		Width:      g.Width,
		Height:     g.Height,
		Directions: make([]int8, size),
		Distances:  make([]int, size),
		Source:     island.Point{X: -1, Y: -1},
		heap:       make(minHeap, 0, size/4),
	}
}

// Distance returns steps from the source, -1 if unreachable or off the map
func (f *DistanceField) Distance(p island.Point) int {
	if p.X < 0 || p.Y < 0 || p.X >= f.Width || p.Y >= f.Height {
		return -1
	}
	d := f.Distances[p.Y*f.Width+p.X]
	if d >= costUnreachable {
		return -1
	}
	return d
}

// Compute runs Dijkstra from source, then points every reached cell at its nearest neighbour
// toward the source. A blocked source leaves every cell unreachable.
func (f *DistanceField) Compute(g *Grid, source island.Point) {
	size := f.Width * f.Height
	w := f.Width

	for i := 0; i < size; i++ {
		f.Directions[i] = DirNone
		f.Distances[i] = costUnreachable
	}
	f.Source = source

	if g.Blocked(source.X, source.Y) {
		return
	}

	// Phase 1: Dijkstra
	sourceIdx := source.Y*w + source.X
	f.Distances[sourceIdx] = 0

	f.heap = f.heap[:0]
	f.heap.push(heapEntry{idx: sourceIdx, dist: 0})

	for len(f.heap) > 0 {
		entry := f.heap.pop()

		if entry.dist > f.Distances[entry.idx] {
			continue // Stale entry
		}

		cx := entry.idx % w
		cy := entry.idx / w

		for dirIdx := int8(0); dirIdx < DirCount; dirIdx++ {
			nx := cx + DirVectors[dirIdx][0]
			ny := cy + DirVectors[dirIdx][1]
			if g.Blocked(nx, ny) {
				continue
			}

			nIdx := ny*w + nx
			newDist := entry.dist + stepCost
			if newDist < f.Distances[nIdx] {
				f.Distances[nIdx] = newDist
				f.heap.push(heapEntry{idx: nIdx, dist: newDist})
			}
		}
	}

	// Phase 2: steepest descent toward the source
	f.Directions[sourceIdx] = DirSource

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			idx := y*w + x
			dist := f.Distances[idx]
			if dist >= costUnreachable || dist == 0 {
				continue
			}

			bestDir := DirNone
			bestDist := dist
			for dirIdx := int8(0); dirIdx < DirCount; dirIdx++ {
				nx := x + DirVectors[dirIdx][0]
				ny := y + DirVectors[dirIdx][1]
				if nx < 0 || ny < 0 || nx >= f.Width || ny >= f.Height {
					continue
				}
				if nDist := f.Distances[ny*w+nx]; nDist < bestDist {
					bestDist = nDist
					bestDir = dirIdx
				}
			}
			f.Directions[idx] = bestDir
		}
	}
}

// PathTo walks the field back from target and returns the cells from source to target
func (f *DistanceField) PathTo(target island.Point) (Path, error) {
	cost := f.Distance(target)
	if cost < 0 {
		return Path{}, &PathNotFoundError{From: f.Source, To: target}
	}

	cells := make([]island.Point, 0, cost+1)
	p := target
	for {
		cells = append(cells, p)
		dir := f.Directions[p.Y*f.Width+p.X]
		if dir == DirSource {
			break
		}
		p = island.Point{X: p.X + DirVectors[dir][0], Y: p.Y + DirVectors[dir][1]}
	}
	slices.Reverse(cells)

	return Path{Cells: cells, Cost: cost}, nil
}
