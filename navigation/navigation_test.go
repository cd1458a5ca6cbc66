package navigation

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/routega/island"
	"github.com/lixenwraith/routega/maze"
)

// parseGrid reads '#' as wall and anything else as open
func parseGrid(t *testing.T, lines ...string) *Grid {
	t.Helper()
	rows := make([][]uint8, len(lines))
	for y, line := range lines {
		rows[y] = make([]uint8, len(line))
		for x, c := range line {
			if c == '#' {
				rows[y][x] = 1
			}
		}
	}
	g, err := NewGrid(rows)
	require.NoError(t, err)
	return g
}

func pt(x, y int) island.Point { return island.Point{X: x, Y: y} }

func TestNewGridValidation(t *testing.T) {
	_, err := NewGrid(nil)
	assert.Error(t, err)

	_, err = NewGrid([][]uint8{{0, 0}, {0}})
	assert.ErrorContains(t, err, "row 1")
}

func TestLoadWallsAndBlocked(t *testing.T) {
	g, err := LoadWalls(strings.NewReader(`[[0,1,0],[0,0,0]]`))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width)
	assert.Equal(t, 2, g.Height)

	assert.False(t, g.Blocked(0, 0))
	assert.True(t, g.Blocked(1, 0))
	assert.True(t, g.Blocked(-1, 0), "off map")
	assert.True(t, g.Blocked(3, 1), "off map")
	assert.Equal(t, [][]uint8{{0, 1, 0}, {0, 0, 0}}, g.Rows())
}

func TestAStarStraightCorridor(t *testing.T) {
	g := parseGrid(t, "......")
	p, err := AStar(g, pt(0, 0), pt(5, 0))
	require.NoError(t, err)
	assert.Equal(t, 5, p.Cost)
	assert.Len(t, p.Cells, 6)
	assert.Equal(t, pt(0, 0), p.Cells[0])
	assert.Equal(t, pt(5, 0), p.Cells[5])
}

func TestAStarDiagonalStep(t *testing.T) {
	g := parseGrid(t, "..", "..")
	p, err := AStar(g, pt(0, 0), pt(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Cost)
}

func TestAStarAroundWall(t *testing.T) {
	g := parseGrid(t,
		".#.",
		".#.",
		"...",
	)
	p, err := AStar(g, pt(0, 0), pt(2, 0))
	require.NoError(t, err)
	// Down, diagonal under the wall, diagonal up, up
	assert.Equal(t, 4, p.Cost)
	for _, c := range p.Cells {
		assert.False(t, g.Blocked(c.X, c.Y))
	}
}

func TestAStarSamePoint(t *testing.T) {
	g := parseGrid(t, "..")
	p, err := AStar(g, pt(1, 0), pt(1, 0))
	require.NoError(t, err)
	assert.Zero(t, p.Cost)
}

func TestAStarUnreachable(t *testing.T) {
	g := parseGrid(t,
		".#.",
		"###",
		"...",
	)
	_, err := AStar(g, pt(0, 0), pt(2, 0))
	require.ErrorIs(t, err, ErrPathNotFound)

	_, err = AStar(g, pt(0, 0), pt(1, 0))
	var notFound *PathNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, pt(1, 0), notFound.To)
}

func TestDistanceFieldExact(t *testing.T) {
	g := parseGrid(t,
		"....",
		".##.",
		"....",
	)
	f := NewDistanceField(g)
	f.Compute(g, pt(0, 0))

	assert.Equal(t, 0, f.Distance(pt(0, 0)))
	assert.Equal(t, 3, f.Distance(pt(3, 0)))
	assert.Equal(t, 4, f.Distance(pt(3, 2)), "walls force a detour")
	assert.Equal(t, -1, f.Distance(pt(1, 1)), "wall")
	assert.Equal(t, -1, f.Distance(pt(9, 9)), "off map")

	p, err := f.PathTo(pt(3, 2))
	require.NoError(t, err)
	assert.Equal(t, 4, p.Cost)
	require.Len(t, p.Cells, 5)
	assert.Equal(t, pt(0, 0), p.Cells[0])
	assert.Equal(t, pt(3, 2), p.Cells[4])
	for _, c := range p.Cells {
		assert.False(t, g.Blocked(c.X, c.Y))
	}
}

func TestDistanceFieldBlockedSource(t *testing.T) {
	g := parseGrid(t, "#.")
	f := NewDistanceField(g)
	f.Compute(g, pt(0, 0))
	_, err := f.PathTo(pt(1, 0))
	assert.ErrorIs(t, err, ErrPathNotFound)
}

// On a maze with unit-wide corridors the heuristic never cuts corners, so both methods agree
func TestPrecomputeMethodsAgreeOnMaze(t *testing.T) {
	res, err := maze.Generate(maze.Config{Width: 21, Height: 15, Braiding: 0.4, Locations: 7, Seed: 17})
	require.NoError(t, err)
	g, err := NewGrid(res.Walls)
	require.NoError(t, err)

	points := make([]island.Point, len(res.Locations))
	for i, loc := range res.Locations {
		points[i] = loc.Point()
	}

	field, err := Precompute(context.Background(), g, points, Options{Workers: 3, Method: MethodField})
	require.NoError(t, err)
	require.Len(t, field, 7*6)

	for i, row := range field {
		assert.Equal(t, points[i/6], row.From, "rows grouped by source")
		assert.NotEqual(t, row.From, row.To)
		p, err := AStar(g, row.From, row.To)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.Cost, row.Distance)
	}

	table := island.NewDistanceTable(field)
	d1, err := table.Distance(points[0], points[1])
	require.NoError(t, err)
	d2, err := table.Distance(points[1], points[0])
	require.NoError(t, err)
	assert.Equal(t, d1, d2, "symmetric")
}

func TestPrecomputeProgress(t *testing.T) {
	g := parseGrid(t, ".....")
	points := []island.Point{pt(0, 0), pt(2, 0), pt(4, 0)}

	var mu sync.Mutex
	var calls []int
	rows, err := Precompute(context.Background(), g, points, Options{
		Workers: 2,
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 3, total)
			calls = append(calls, done)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)

	want := []island.DistanceRow{
		{From: pt(0, 0), To: pt(2, 0), Distance: 2},
		{From: pt(0, 0), To: pt(4, 0), Distance: 4},
		{From: pt(2, 0), To: pt(0, 0), Distance: 2},
		{From: pt(2, 0), To: pt(4, 0), Distance: 2},
		{From: pt(4, 0), To: pt(0, 0), Distance: 4},
		{From: pt(4, 0), To: pt(2, 0), Distance: 2},
	}
	assert.Equal(t, want, rows)
}

func TestPrecomputeDisconnected(t *testing.T) {
	g := parseGrid(t, "..#..")
	points := []island.Point{pt(0, 0), pt(1, 0), pt(4, 0)}

	_, err := Precompute(context.Background(), g, points, Options{Workers: 1})
	require.ErrorIs(t, err, ErrPathNotFound)

	rows, err := Precompute(context.Background(), g, points, Options{Workers: 1, AllowDisconnected: true, Method: MethodField})
	require.NoError(t, err)
	assert.Equal(t, []island.DistanceRow{
		{From: pt(0, 0), To: pt(1, 0), Distance: 1},
		{From: pt(1, 0), To: pt(0, 0), Distance: 1},
	}, rows)
}

func TestPrecomputeCancelled(t *testing.T) {
	g := parseGrid(t, "....")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Precompute(ctx, g, []island.Point{pt(0, 0), pt(3, 0)}, Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("field")
	require.NoError(t, err)
	assert.Equal(t, MethodField, m)

	m, err = ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, MethodAStar, m)

	_, err = ParseMethod("bfs")
	assert.Error(t, err)
}

func TestWriteWallsRoundTrip(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteWalls(&buf, [][]uint8{{0, 1}, {1, 0}}))
	assert.Equal(t, "[[0,1],[1,0]]\n", buf.String())

	g, err := LoadWalls(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.True(t, g.Blocked(1, 0))
	assert.False(t, g.Blocked(1, 1))
}
