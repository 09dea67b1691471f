package level

import (
	"sort"

	"github.com/tileforge/tileforge/internal/core/grid"
	"github.com/tileforge/tileforge/internal/core/rng"
	"github.com/tileforge/tileforge/pkg/sequence"
)

// annotate runs the final assembler phase: pick the start tile, build the
// BFS distance field, sample spawn points with distance-scaled probability,
// and choose the exit as the highest-difficulty spawn.
func annotate(lvl *Level, r *rng.RNG, cfg Config) {
	g := lvl.Grid
	lvl.Start = pickStart(g)

	dist := distanceField(g, lvl.Start)
	maxDist := 0
	for _, d := range dist {
		if d > maxDist {
			maxDist = d
		}
	}

	if maxDist == 0 {
		// One-cell region: nothing to walk to, so the start doubles as the
		// exit and the only spawn.
		lvl.Exit = lvl.Start
		lvl.Spawns = []SpawnPoint{{Pos: lvl.Start, Difficulty: 0}}
		return
	}

	type candidate struct {
		idx  int
		dist int
	}
	var picked []candidate
	for i, d := range dist {
		if d < 1 {
			continue
		}
		chance := d * cfg.MaxSpawnChance / maxDist
		if r.Chance(chance) {
			picked = append(picked, candidate{idx: i, dist: d})
		}
	}
	if len(picked) == 0 {
		// Tiny or unlucky levels still get one spawn: the farthest cell.
		picked = append(picked, candidate{idx: farthestCell(dist), dist: maxDist})
	}

	// Ordered by distance so difficulty is non-decreasing along the list;
	// index breaks ties to keep the order a pure function of the run.
	sort.SliceStable(picked, func(i, j int) bool {
		if picked[i].dist != picked[j].dist {
			return picked[i].dist < picked[j].dist
		}
		return picked[i].idx < picked[j].idx
	})

	exitHeap := sequence.NewPriorityQueue[grid.Point]()
	lvl.Spawns = make([]SpawnPoint, 0, len(picked))
	for _, c := range picked {
		x, y := g.Coords(c.idx)
		p := grid.Point{X: x, Y: y}
		lvl.Spawns = append(lvl.Spawns, SpawnPoint{
			Pos:        p,
			Difficulty: float64(c.dist) / float64(maxDist),
		})
		exitHeap.Enqueue(p, c.dist)
	}
	lvl.Exit, _ = exitHeap.Dequeue()
}

// pickStart returns the walkable cell nearest the grid center, ties broken
// by the lowest flat index. After repair there is exactly one region, so
// any walkable cell is in it.
func pickStart(g *grid.Grid) grid.Point {
	cx, cy := g.Width/2, g.Height/2
	best := -1
	bestDist := int(^uint(0) >> 1)
	for i, c := range g.Cells {
		if !c.Walkable() {
			continue
		}
		x, y := g.Coords(i)
		d := abs(x-cx) + abs(y-cy)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best == -1 {
		panic("level: no walkable cell after repair")
	}
	x, y := g.Coords(best)
	return grid.Point{X: x, Y: y}
}

// distanceField computes per-cell BFS distance from start over walkable
// cells (4-connectivity). Unreachable or unwalkable cells hold -1; after
// repair no walkable cell is unreachable.
func distanceField(g *grid.Grid, start grid.Point) []int {
	dist := make([]int, len(g.Cells))
	for i := range dist {
		dist[i] = -1
	}

	queue := sequence.NewRing[int](64)
	si := g.Index(start.X, start.Y)
	dist[si] = 0
	queue.Push(si)

	for queue.Len() > 0 {
		i, _ := queue.Pop()
		x, y := g.Coords(i)
		for _, off := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nx, ny := x+off[0], y+off[1]
			if !g.In(nx, ny) || !g.At(nx, ny).Walkable() {
				continue
			}
			ni := g.Index(nx, ny)
			if dist[ni] == -1 {
				dist[ni] = dist[i] + 1
				queue.Push(ni)
			}
		}
	}
	return dist
}

func farthestCell(dist []int) int {
	best, bestDist := 0, -1
	for i, d := range dist {
		if d > bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
