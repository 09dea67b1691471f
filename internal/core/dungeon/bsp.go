// Package dungeon generates room-and-corridor layouts by binary space
// partitioning. The partition tree lives in a flat arena addressed by
// integer index; it only exists for the duration of one generation run.
package dungeon

import (
	"errors"

	"github.com/tileforge/tileforge/internal/core/grid"
	"github.com/tileforge/tileforge/internal/core/rng"
)

var (
	ErrUnsplittable = errors.New("dungeon: grid too small to partition")
	ErrNoRooms      = errors.New("dungeon: no leaf could fit a room")
)

// Generator holds the partition and room-size parameters for one layout.
type Generator struct {
	MinLeafSize int // a split never produces a side shorter than this
	MinRoomSize int
	MaxRoomSize int
	MaxDepth    int
}

// node is one arena slot of the partition tree. Children are arena indices,
// -1 for a leaf; room indexes into Tree.rooms, -1 when the leaf was too
// small to hold one.
type node struct {
	bounds grid.Rect
	left   int
	right  int
	room   int
	depth  int
}

// Tree is the partition arena built during a run. It is discarded once the
// grid is carved; tests inspect it to check containment properties.
type Tree struct {
	nodes []node
	rooms []grid.Rect
}

// Rooms returns the placed room rects.
func (t *Tree) Rooms() []grid.Rect {
	return t.rooms
}

// LeafCount returns the number of leaves in the partition tree.
func (t *Tree) LeafCount() int {
	n := 0
	for i := range t.nodes {
		if t.nodes[i].left == -1 {
			n++
		}
	}
	return n
}

// Carve partitions the grid, places a room in each leaf that can hold one,
// and joins sibling subtrees with corridors. The grid is expected to be all
// wall on entry. Returns the partition tree for inspection.
//
// ErrUnsplittable means the root could not split even once; the caller
// decides the fallback (a single full-bounds room, per the assembler).
func (gen *Generator) Carve(g *grid.Grid, r *rng.RNG) (*Tree, error) {
	t := &Tree{}
	t.nodes = append(t.nodes, node{
		bounds: grid.Rect{X: 0, Y: 0, W: g.Width, H: g.Height},
		left:   -1,
		right:  -1,
		room:   -1,
	})
	gen.split(t, 0, r)
	if len(t.nodes) == 1 {
		return nil, ErrUnsplittable
	}

	gen.placeRooms(t, r)
	if len(t.rooms) == 0 {
		return nil, ErrNoRooms
	}

	for _, room := range t.rooms {
		g.CarveRect(room, grid.TileFloor)
	}
	gen.connect(t, g, 0, r)
	return t, nil
}

// split recursively partitions the node at idx. Axis choice follows the
// aspect ratio: a side more than 1.25x longer than the other is always the
// one cut; near-square nodes pick the axis from the RNG.
func (gen *Generator) split(t *Tree, idx int, r *rng.RNG) {
	b := t.nodes[idx].bounds
	depth := t.nodes[idx].depth
	if depth >= gen.MaxDepth {
		return
	}

	canX := b.W >= 2*gen.MinLeafSize
	canY := b.H >= 2*gen.MinLeafSize
	if !canX && !canY {
		return
	}

	var vertical bool // vertical cut splits the width
	switch {
	case !canY:
		vertical = true
	case !canX:
		vertical = false
	case b.W*4 > b.H*5:
		vertical = true
	case b.H*4 > b.W*5:
		vertical = false
	default:
		vertical = r.NextRange(0, 1) == 1
	}

	var left, right grid.Rect
	if vertical {
		off := r.NextRange(gen.MinLeafSize, b.W-gen.MinLeafSize)
		left = grid.Rect{X: b.X, Y: b.Y, W: off, H: b.H}
		right = grid.Rect{X: b.X + off, Y: b.Y, W: b.W - off, H: b.H}
	} else {
		off := r.NextRange(gen.MinLeafSize, b.H-gen.MinLeafSize)
		left = grid.Rect{X: b.X, Y: b.Y, W: b.W, H: off}
		right = grid.Rect{X: b.X, Y: b.Y + off, W: b.W, H: b.H - off}
	}

	li := len(t.nodes)
	t.nodes = append(t.nodes,
		node{bounds: left, left: -1, right: -1, room: -1, depth: depth + 1},
		node{bounds: right, left: -1, right: -1, room: -1, depth: depth + 1},
	)
	t.nodes[idx].left = li
	t.nodes[idx].right = li + 1

	gen.split(t, li, r)
	gen.split(t, li+1, r)
}
