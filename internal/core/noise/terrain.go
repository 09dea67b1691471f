package noise

import (
	"github.com/tileforge/tileforge/internal/core/grid"
)

// Band is a discrete terrain category selected by thresholding the fractal
// value.
type Band uint8

const (
	BandWater Band = iota
	BandSand
	BandGrass
	BandStone
)

// Thresholds are the fixed-point band cut points. A value below Water is
// water, below Sand is sand, below Stone is grass, and anything above is
// stone.
type Thresholds struct {
	Water int64
	Sand  int64
	Stone int64
}

// DefaultThresholds gives a rough 30/10/35/25 water/sand/grass/stone split.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Water: One * 30 / 100,
		Sand:  One * 40 / 100,
		Stone: One * 75 / 100,
	}
}

// Classify maps a fractal value to its band.
func (t Thresholds) Classify(v int64) Band {
	switch {
	case v < t.Water:
		return BandWater
	case v < t.Sand:
		return BandSand
	case v < t.Stone:
		return BandGrass
	default:
		return BandStone
	}
}

// Tile maps a band to the tile kind downstream consumers understand:
// water is a hazard, sand and grass are floor, stone is wall.
func (b Band) Tile() grid.TileKind {
	switch b {
	case BandWater:
		return grid.TileHazard
	case BandStone:
		return grid.TileWall
	default:
		return grid.TileFloor
	}
}

// Generator fills a grid with terrain bands from fractal noise.
type Generator struct {
	Octaves     int
	Persistence int64 // fixed point, One/2 halves each octave
	FeatureSize int   // cells per base-frequency noise cell
	Thresholds  Thresholds
}

// Carve classifies every cell of the grid. The border is forced to wall so
// the world has a closed edge regardless of what the noise produced there.
func (gen *Generator) Carve(g *grid.Grid, seed uint64) {
	s := NewSampler(seed)
	size := gen.FeatureSize
	if size < 1 {
		size = 1
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Border(x, y) {
				g.Set(x, y, grid.TileWall)
				continue
			}
			nx := (int64(x) << Shift) / int64(size)
			ny := (int64(y) << Shift) / int64(size)
			v := s.Fractal(nx, ny, gen.Octaves, gen.Persistence)
			g.Set(x, y, gen.Thresholds.Classify(v).Tile())
		}
	}
	gen.markSlopes(g)
}

// markSlopes converts stone cells that touch grass-level floor on a cardinal
// side into slopes, giving the collision layer a walkable transition band.
func (gen *Generator) markSlopes(g *grid.Grid) {
	var offsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if g.At(x, y) != grid.TileWall {
				continue
			}
			for _, off := range offsets {
				if g.At(x+off[0], y+off[1]) == grid.TileFloor {
					g.Set(x, y, grid.TileSlope)
					break
				}
			}
		}
	}
}
