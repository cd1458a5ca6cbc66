package navigation

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lixenwraith/routega/island"
)

// Grid is a rectangular obstacle map; cells outside the bounds are blocked
type Grid struct {
	Width, Height int
	walls         []bool
}

// NewGrid builds a grid from rows of cells where any non-zero value is a wall
func NewGrid(rows [][]uint8) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("wall grid is empty")
	}
	w, h := len(rows[0]), len(rows)
	g := &Grid{Width: w, Height: h, walls: make([]bool, w*h)}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("wall grid row %d has %d cells, want %d", y, len(row), w)
		}
		for x, cell := range row {
			g.walls[y*w+x] = cell != 0
		}
	}
	return g, nil
}

// LoadWalls decodes a JSON array of rows
func LoadWalls(r io.Reader) (*Grid, error) {
	var rows [][]uint8
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode walls: %w", err)
	}
	return NewGrid(rows)
}

// Blocked reports whether a cell is a wall or off the map
func (g *Grid) Blocked(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return true
	}
	return g.walls[y*g.Width+x]
}

// Rows returns the grid in the LoadWalls layout
func (g *Grid) Rows() [][]uint8 {
	rows := make([][]uint8, g.Height)
	for y := range rows {
		rows[y] = make([]uint8, g.Width)
		for x := range rows[y] {
			if g.walls[y*g.Width+x] {
				rows[y][x] = 1
			}
		}
	}
	return rows
}

func (g *Grid) index(p island.Point) int {
	return p.Y*g.Width + p.X
}

func (g *Grid) point(idx int) island.Point {
	return island.Point{X: idx % g.Width, Y: idx / g.Width}
}

// WriteWalls encodes rows as JSON number arrays in the LoadWalls layout
func WriteWalls(w io.Writer, rows [][]uint8) error {
	// []uint8 would encode as base64
	out := make([][]int, len(rows))
	for y, row := range rows {
		out[y] = make([]int, len(row))
		for x, cell := range row {
			out[y][x] = int(cell)
		}
	}
	return json.NewEncoder(w).Encode(out)
}
