// Package cave carves organic layouts with majority-rule cellular
// automata. The result has no connectivity guarantee; the repair pass is
// mandatory afterwards.
package cave

import (
	"errors"

	"github.com/tileforge/tileforge/internal/core/grid"
	"github.com/tileforge/tileforge/internal/core/rng"
)

// ErrNoFloor means the fill/iteration combination smoothed every floor cell
// away. The caller retries with adjusted parameters or surfaces the failure;
// a silently empty level is never returned.
var ErrNoFloor = errors.New("cave: automata produced no floor tiles")

// Generator holds the automata parameters for one cave.
type Generator struct {
	FillPercent int // probability a cell starts as floor, in [0, 100]
	Iterations  int
}

// Carve seeds the grid from the RNG and runs the automata. The outer border
// is forced to wall both at seeding and after every iteration.
func (gen *Generator) Carve(g *grid.Grid, r *rng.RNG) error {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Border(x, y) {
				g.Set(x, y, grid.TileWall)
				continue
			}
			if r.Chance(gen.FillPercent) {
				g.Set(x, y, grid.TileFloor)
			} else {
				g.Set(x, y, grid.TileWall)
			}
		}
	}

	next := make([]grid.TileKind, len(g.Cells))
	for i := 0; i < gen.Iterations; i++ {
		gen.step(g, next)
	}

	if g.Count(grid.TileFloor) == 0 {
		return ErrNoFloor
	}
	return nil
}

// step applies one automata generation into next, then swaps it in.
// Rule: a cell becomes wall when 5 or more of its 8 neighbors are wall,
// floor otherwise. Out-of-bounds neighbors count as wall.
func (gen *Generator) step(g *grid.Grid, next []grid.TileKind) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := g.Index(x, y)
			if g.Border(x, y) {
				next[i] = grid.TileWall
				continue
			}
			if wallNeighbors(g, x, y) >= 5 {
				next[i] = grid.TileWall
			} else {
				next[i] = grid.TileFloor
			}
		}
	}
	copy(g.Cells, next)
}

func wallNeighbors(g *grid.Grid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.In(nx, ny) || g.At(nx, ny) == grid.TileWall {
				n++
			}
		}
	}
	return n
}
