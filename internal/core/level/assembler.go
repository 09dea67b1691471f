package level

import (
	"errors"
	"fmt"

	"github.com/tileforge/tileforge/internal/core/cave"
	"github.com/tileforge/tileforge/internal/core/dungeon"
	"github.com/tileforge/tileforge/internal/core/grid"
	"github.com/tileforge/tileforge/internal/core/noise"
	"github.com/tileforge/tileforge/internal/core/repair"
	"github.com/tileforge/tileforge/internal/core/rng"
)

const (
	// caveRetries bounds the deterministic parameter-adjustment loop when
	// the automata smooths every floor cell away.
	caveRetries = 3

	// noiseStream derives the terrain sampler seed from the level seed so
	// positional noise does not consume sequential RNG state.
	noiseStream = 0x7E44A1
)

// Generate builds a complete level from a seed and configuration. It is a
// pure function: no global state, no clock, no ambient randomness. The run
// is synchronous and never blocks, so it is safe to call from a rollback
// resimulation step.
//
// Phases run in fixed order: generate (by mode), repair (always), annotate.
func Generate(seed uint64, cfg Config) (*Level, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := grid.New(cfg.Width, cfg.Height)
	r := rng.New(seed)

	var err error
	switch cfg.Mode {
	case ModeDungeon:
		err = generateDungeon(g, r, cfg)
	case ModeCave:
		err = generateCave(g, r, cfg)
	case ModeTerrain:
		generateTerrain(g, seed, cfg)
	}
	if err != nil {
		return nil, err
	}

	// A mode that legitimately produced nothing walkable (e.g. an all-water
	// terrain field) degrades to the same full-bounds room the dungeon
	// fallback uses, never to an empty level.
	if g.CountWalkable() == 0 {
		carveFullBoundsRoom(g)
	}

	rp := &repair.Repairer{MinRegionSize: cfg.MinRegionSize}
	if err := rp.Repair(g); err != nil {
		return nil, fmt.Errorf("level: repair for seed %d: %w", seed, err)
	}

	lvl := &Level{Seed: seed, Config: cfg, Grid: g}
	annotate(lvl, r, cfg)
	return lvl, nil
}

func generateDungeon(g *grid.Grid, r *rng.RNG, cfg Config) error {
	gen := &dungeon.Generator{
		MinLeafSize: cfg.MinRoomSize + 2, // room plus its 1-tile margins
		MinRoomSize: cfg.MinRoomSize,
		MaxRoomSize: cfg.MaxRoomSize,
		MaxDepth:    cfg.MaxDepth,
	}
	_, err := gen.Carve(g, r)
	if errors.Is(err, dungeon.ErrUnsplittable) || errors.Is(err, dungeon.ErrNoRooms) {
		carveFullBoundsRoom(g)
		return nil
	}
	return err
}

func generateCave(g *grid.Grid, r *rng.RNG, cfg Config) error {
	fill := cfg.FillPercent
	for attempt := 0; attempt < caveRetries; attempt++ {
		gen := &cave.Generator{FillPercent: fill, Iterations: cfg.CaveIterations}
		err := gen.Carve(g, r)
		if err == nil {
			return nil
		}
		if !errors.Is(err, cave.ErrNoFloor) {
			return err
		}
		// Deterministic adjustment: open the cave up and try again.
		fill += 10
		if fill > 90 {
			fill = 90
		}
	}
	return fmt.Errorf("%w: cave empty after %d attempts", ErrEmptyLevel, caveRetries)
}

func generateTerrain(g *grid.Grid, seed uint64, cfg Config) {
	gen := &noise.Generator{
		Octaves:     cfg.Octaves,
		Persistence: noise.One * int64(cfg.PersistencePercent) / 100,
		FeatureSize: cfg.FeatureSize,
		Thresholds:  noise.DefaultThresholds(),
	}
	gen.Carve(g, rng.DeriveSeed(seed, noiseStream))
}

// carveFullBoundsRoom opens the entire grid interior as one room, the
// fallback for configurations too tight for the requested generator.
func carveFullBoundsRoom(g *grid.Grid) {
	g.Fill(grid.TileWall)
	full := grid.Rect{X: 0, Y: 0, W: g.Width, H: g.Height}
	g.CarveRect(full.Inset(1), grid.TileFloor)
}
