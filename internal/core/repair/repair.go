// Package repair enforces the single-region post-condition every generator
// output must satisfy: after Repair, exactly one connected component of
// walkable cells remains.
package repair

import (
	"errors"
	"sort"

	"github.com/tileforge/tileforge/internal/core/grid"
	"github.com/tileforge/tileforge/pkg/sequence"
)

// ErrRegionUnreachable means a surviving region could not be tunneled into
// the main region within the attempt budget. A level with unreachable floor
// must never be returned: an unreachable exit breaks the session for every
// peer at once.
var ErrRegionUnreachable = errors.New("repair: region could not be connected")

// Region is one connected component of walkable cells, recorded as flat
// grid indices in discovery order.
type Region struct {
	Cells []int
}

// Size returns the number of cells in the region.
func (r *Region) Size() int {
	return len(r.Cells)
}

// Repairer fills in pocket regions below MinRegionSize and tunnels every
// surviving region into the largest one.
type Repairer struct {
	MinRegionSize     int
	MaxTunnelAttempts int
}

// Repair rewrites the grid so exactly one walkable region remains.
func (rp *Repairer) Repair(g *grid.Grid) error {
	regions := Regions(g)
	if len(regions) == 0 {
		return nil
	}

	// Largest region first; ties break on the lowest cell index so the
	// ordering is a pure function of the grid.
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Size() != regions[j].Size() {
			return regions[i].Size() > regions[j].Size()
		}
		return regions[i].Cells[0] < regions[j].Cells[0]
	})

	// Pockets below the threshold are noise: fill them back in. The largest
	// region always survives, even when it is itself below the threshold.
	kept := regions[:1]
	for _, reg := range regions[1:] {
		if reg.Size() < rp.MinRegionSize {
			for _, i := range reg.Cells {
				g.Cells[i] = grid.TileWall
			}
			continue
		}
		kept = append(kept, reg)
	}

	attempts := rp.MaxTunnelAttempts
	if attempts < 1 {
		attempts = len(kept)
	}

	main := kept[0]
	for _, reg := range kept[1:] {
		if attempts == 0 {
			return ErrRegionUnreachable
		}
		attempts--
		from, to := closestPair(g, main, reg)
		carveTunnel(g, from, to)
		main.Cells = append(main.Cells, reg.Cells...)
	}

	// The carve geometry guarantees a join, but the post-condition is load
	// bearing enough to verify outright.
	if len(Regions(g)) != 1 {
		return ErrRegionUnreachable
	}
	return nil
}

// Regions enumerates all connected walkable components with a queue-based
// flood fill (4-connectivity). Component order and cell order within a
// component depend only on grid content.
func Regions(g *grid.Grid) []*Region {
	visited := make([]bool, len(g.Cells))
	queue := sequence.NewRing[int](64)
	var out []*Region

	for start, cell := range g.Cells {
		if visited[start] || !cell.Walkable() {
			continue
		}
		reg := &Region{}
		visited[start] = true
		queue.Push(start)
		for queue.Len() > 0 {
			i, _ := queue.Pop()
			reg.Cells = append(reg.Cells, i)
			x, y := g.Coords(i)
			for _, off := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
				nx, ny := x+off[0], y+off[1]
				if !g.In(nx, ny) || !g.At(nx, ny).Walkable() {
					continue
				}
				ni := g.Index(nx, ny)
				if !visited[ni] {
					visited[ni] = true
					queue.Push(ni)
				}
			}
		}
		out = append(out, reg)
	}
	return out
}

// closestPair finds the pair of cells across two regions with the minimum
// Manhattan distance. Ties break on the lexicographically lowest (a, b)
// flat-index pair, so the choice depends only on grid content and never on
// the order the regions' cells were discovered in.
func closestPair(g *grid.Grid, a, b *Region) (grid.Point, grid.Point) {
	bestDist := int(^uint(0) >> 1)
	bestA, bestB := -1, -1
	for _, ai := range a.Cells {
		ax, ay := g.Coords(ai)
		for _, bi := range b.Cells {
			bx, by := g.Coords(bi)
			d := abs(ax-bx) + abs(ay-by)
			if d > bestDist {
				continue
			}
			if d == bestDist && (ai > bestA || (ai == bestA && bi >= bestB)) {
				continue
			}
			bestDist = d
			bestA, bestB = ai, bi
		}
	}
	ax, ay := g.Coords(bestA)
	bx, by := g.Coords(bestB)
	return grid.Point{X: ax, Y: ay}, grid.Point{X: bx, Y: by}
}

// carveTunnel digs an L-shaped Manhattan path, horizontal leg first. The
// routing rule is fixed (not randomized) so repair consumes no RNG state and
// stays a pure function of the grid.
func carveTunnel(g *grid.Grid, from, to grid.Point) {
	x1, x2 := from.X, to.X
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.Set(x, from.Y, grid.TileFloor)
	}
	y1, y2 := from.Y, to.Y
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.Set(to.X, y, grid.TileFloor)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
