// Package grid holds the tile-world representation shared by every
// generation phase and by downstream consumers (autotiling, collision,
// spawning).
package grid

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// TileKind is the per-cell classification written into the output buffer.
// The zero value is solid wall so a fresh grid starts as unbroken rock.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileSlope
	TileHazard
)

// Walkable reports whether an entity can stand on the tile. Hazards block
// movement for connectivity purposes; the collision layer decides what
// touching one actually does.
func (k TileKind) Walkable() bool {
	return k == TileFloor || k == TileSlope
}

// Point is a cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a fixed-size tile field stored as a flat row-major buffer.
// Dimensions are fixed at allocation and never change afterwards.
type Grid struct {
	Width  int
	Height int
	Cells  []TileKind
}

// MaxDimension bounds each grid axis to what the wire format carries.
const MaxDimension = math.MaxUint16

// New allocates a grid of the given dimensions, all wall.
// Dimensions outside [1, MaxDimension] panic; validation belongs to the
// config layer and a bad size reaching here is a defect.
func New(width, height int) *Grid {
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		panic("grid: dimensions out of range")
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]TileKind, width*height),
	}
}

// Index converts cell coordinates to a flat buffer index.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// Coords converts a flat buffer index back to cell coordinates.
func (g *Grid) Coords(i int) (int, int) {
	return i % g.Width, i / g.Width
}

// In reports whether the coordinates lie inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the tile at the given coordinates.
func (g *Grid) At(x, y int) TileKind {
	return g.Cells[g.Index(x, y)]
}

// Set writes the tile at the given coordinates.
func (g *Grid) Set(x, y int, k TileKind) {
	g.Cells[g.Index(x, y)] = k
}

// Fill overwrites every cell with the given kind.
func (g *Grid) Fill(k TileKind) {
	for i := range g.Cells {
		g.Cells[i] = k
	}
}

// Count returns how many cells hold the given kind.
func (g *Grid) Count(k TileKind) int {
	n := 0
	for _, c := range g.Cells {
		if c == k {
			n++
		}
	}
	return n
}

// CountWalkable returns how many cells an entity can stand on.
func (g *Grid) CountWalkable() int {
	n := 0
	for _, c := range g.Cells {
		if c.Walkable() {
			n++
		}
	}
	return n
}

// Border reports whether the coordinates lie on the outermost ring.
func (g *Grid) Border(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

// CarveRect sets every cell of r to the given kind. r must lie inside the
// grid; a rect escaping its bounds is a defect upstream.
func (g *Grid) CarveRect(r Rect, k TileKind) {
	if r.X < 0 || r.Y < 0 || r.X+r.W > g.Width || r.Y+r.H > g.Height {
		panic("grid: rect outside grid bounds")
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			g.Set(x, y, k)
		}
	}
}

// Clone returns a deep copy sharing no storage with the receiver.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Width:  g.Width,
		Height: g.Height,
		Cells:  make([]TileKind, len(g.Cells)),
	}
	copy(out.Cells, g.Cells)
	return out
}

// Neighbor bit assignments for NeighborMask, clockwise from north.
const (
	MaskN uint8 = 1 << iota
	MaskNE
	MaskE
	MaskSE
	MaskS
	MaskSW
	MaskW
	MaskNW
)

var maskOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// NeighborMask returns an 8-bit mask with a bit set for each neighbor that
// holds the same kind as the cell itself. Out-of-bounds neighbors count as
// wall. The autotiling layer uses this to pick display tiles without knowing
// anything about generation.
func (g *Grid) NeighborMask(x, y int) uint8 {
	self := g.At(x, y)
	var mask uint8
	for bit, off := range maskOffsets {
		nx, ny := x+off[0], y+off[1]
		kind := TileWall
		if g.In(nx, ny) {
			kind = g.At(nx, ny)
		}
		if kind == self {
			mask |= 1 << uint(bit)
		}
	}
	return mask
}

// Hash returns a 64-bit digest of the dimensions and cell buffer. Peers in a
// session exchange this to confirm they generated identical worlds.
func (g *Grid) Hash() uint64 {
	d := xxhash.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(g.Width))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(g.Height))
	_, _ = d.Write(dims[:])
	buf := make([]byte, len(g.Cells))
	for i, c := range g.Cells {
		buf[i] = byte(c)
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}
