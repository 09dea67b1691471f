package dungeon

import (
	"github.com/tileforge/tileforge/internal/core/grid"
	"github.com/tileforge/tileforge/internal/core/rng"
)

// placeRooms puts a randomized room into every leaf big enough to hold one,
// keeping a 1-tile margin on each side. Leaves that cannot fit MinRoomSize
// stay roomless and are skipped by the corridor pass.
func (gen *Generator) placeRooms(t *Tree, r *rng.RNG) {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.left != -1 {
			continue
		}
		b := n.bounds

		maxW := min(b.W-2, gen.MaxRoomSize)
		maxH := min(b.H-2, gen.MaxRoomSize)
		if maxW < gen.MinRoomSize || maxH < gen.MinRoomSize {
			continue
		}

		w := r.NextRange(gen.MinRoomSize, maxW)
		h := r.NextRange(gen.MinRoomSize, maxH)
		room := grid.Rect{
			X: b.X + r.NextRange(1, b.W-w-1),
			Y: b.Y + r.NextRange(1, b.H-h-1),
			W: w,
			H: h,
		}
		if !b.Contains(room) {
			panic("dungeon: room escaped its leaf bounds")
		}

		n.room = len(t.rooms)
		t.rooms = append(t.rooms, room)
	}
}
