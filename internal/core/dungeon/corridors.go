package dungeon

import (
	"github.com/tileforge/tileforge/internal/core/grid"
	"github.com/tileforge/tileforge/internal/core/rng"
)

// connect walks the tree bottom-up and joins a representative room of each
// internal node's left subtree to one of its right subtree with an L-shaped
// corridor. Because every leaf room is some subtree's representative, the
// tree structure alone makes the whole layout transitively connected.
// Returns the subtree's representative room index, -1 if it has none.
func (gen *Generator) connect(t *Tree, g *grid.Grid, idx int, r *rng.RNG) int {
	n := t.nodes[idx]
	if n.left == -1 {
		return n.room
	}

	lr := gen.connect(t, g, n.left, r)
	rr := gen.connect(t, g, n.right, r)

	if lr != -1 && rr != -1 {
		carveCorridor(g, t.rooms[lr].Center(), t.rooms[rr].Center(), r)
	}
	if lr != -1 {
		return lr
	}
	return rr
}

// carveCorridor digs an axis-aligned L between two cells, the elbow
// direction chosen by the RNG.
func carveCorridor(g *grid.Grid, from, to grid.Point, r *rng.RNG) {
	if r.NextRange(0, 1) == 0 {
		carveHorizontal(g, from.X, to.X, from.Y)
		carveVertical(g, from.Y, to.Y, to.X)
	} else {
		carveVertical(g, from.Y, to.Y, from.X)
		carveHorizontal(g, from.X, to.X, to.Y)
	}
}

func carveHorizontal(g *grid.Grid, x1, x2, y int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.Set(x, y, grid.TileFloor)
	}
}

func carveVertical(g *grid.Grid, y1, y2, x int) {
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.Set(x, y, grid.TileFloor)
	}
}
