package level

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tileforge/tileforge/internal/core/grid"
	"github.com/tileforge/tileforge/internal/core/repair"
)

func dungeonConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeDungeon
	return cfg
}

func caveConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeCave
	cfg.Width = 64
	cfg.Height = 48
	return cfg
}

func terrainConfig() Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeTerrain
	cfg.Width = 96
	cfg.Height = 64
	return cfg
}

func allConfigs() map[string]Config {
	return map[string]Config{
		"dungeon": dungeonConfig(),
		"cave":    caveConfig(),
		"terrain": terrainConfig(),
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for name, cfg := range allConfigs() {
		t.Run(name, func(t *testing.T) {
			for _, seed := range []uint64{0, 1, 1234, 0xDEADBEEF} {
				a, err := Generate(seed, cfg)
				require.NoError(t, err)
				b, err := Generate(seed, cfg)
				require.NoError(t, err)

				require.Equal(t, a.Grid.Cells, b.Grid.Cells, "seed %d tile buffers differ", seed)
				require.Equal(t, a.Start, b.Start)
				require.Equal(t, a.Exit, b.Exit)
				require.Equal(t, a.Spawns, b.Spawns)
				require.Equal(t, a.Hash(), b.Hash())
			}
		})
	}
}

func TestGenerate_SeedsProduceDistinctLevels(t *testing.T) {
	cfg := dungeonConfig()
	a, err := Generate(1, cfg)
	require.NoError(t, err)
	b, err := Generate(2, cfg)
	require.NoError(t, err)
	require.NotEqual(t, a.Hash(), b.Hash())
}

func TestGenerate_ConnectivityComplete(t *testing.T) {
	for name, cfg := range allConfigs() {
		t.Run(name, func(t *testing.T) {
			for _, seed := range []uint64{3, 77, 4096} {
				lvl, err := Generate(seed, cfg)
				require.NoError(t, err)

				// A BFS from the start must visit every walkable cell.
				dist := distanceField(lvl.Grid, lvl.Start)
				for i, c := range lvl.Grid.Cells {
					if c.Walkable() {
						require.NotEqual(t, -1, dist[i],
							"seed %d: walkable cell %d unreachable from start", seed, i)
					}
				}

				regions := repair.Regions(lvl.Grid)
				require.Len(t, regions, 1, "seed %d: more than one region survived", seed)
			}
		})
	}
}

func TestGenerate_StartAndExitWalkable(t *testing.T) {
	for name, cfg := range allConfigs() {
		t.Run(name, func(t *testing.T) {
			lvl, err := Generate(42, cfg)
			require.NoError(t, err)
			require.True(t, lvl.Grid.At(lvl.Start.X, lvl.Start.Y).Walkable())
			require.True(t, lvl.Grid.At(lvl.Exit.X, lvl.Exit.Y).Walkable())
		})
	}
}

func TestGenerate_DifficultyMonotonic(t *testing.T) {
	for name, cfg := range allConfigs() {
		t.Run(name, func(t *testing.T) {
			lvl, err := Generate(1234, cfg)
			require.NoError(t, err)
			require.NotEmpty(t, lvl.Spawns)

			prev := -1.0
			for i, s := range lvl.Spawns {
				require.GreaterOrEqual(t, s.Difficulty, prev,
					"difficulty decreased at spawn %d", i)
				require.GreaterOrEqual(t, s.Difficulty, 0.0)
				require.LessOrEqual(t, s.Difficulty, 1.0)
				prev = s.Difficulty
			}

			// The exit is the highest-difficulty spawn.
			last := lvl.Spawns[len(lvl.Spawns)-1]
			require.Equal(t, last.Difficulty, maxDifficulty(lvl.Spawns))
		})
	}
}

func maxDifficulty(spawns []SpawnPoint) float64 {
	best := 0.0
	for _, s := range spawns {
		if s.Difficulty > best {
			best = s.Difficulty
		}
	}
	return best
}

func TestGenerate_DegenerateDungeonFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = ModeDungeon
	cfg.Width = 10
	cfg.Height = 10
	cfg.MinRoomSize = 6
	cfg.MaxRoomSize = 8

	lvl, err := Generate(1, cfg)
	require.NoError(t, err)

	// Full-bounds room: the entire interior is floor, the border is wall.
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := grid.TileFloor
			if lvl.Grid.Border(x, y) {
				want = grid.TileWall
			}
			require.Equal(t, want, lvl.Grid.At(x, y), "cell (%d,%d)", x, y)
		}
	}
	require.Len(t, repair.Regions(lvl.Grid), 1)
}

func TestGenerate_CaveZeroFillRecovers(t *testing.T) {
	cfg := caveConfig()
	cfg.FillPercent = -1 // below any chance; withDefaults keeps explicit values
	_, err := Generate(1, cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)

	// A legal but hopeless fill percent triggers the deterministic retry
	// path instead of an empty level.
	cfg.FillPercent = 1
	lvl, err := Generate(1, cfg)
	if err != nil {
		require.ErrorIs(t, err, ErrEmptyLevel)
		return
	}
	require.NotZero(t, lvl.Grid.CountWalkable())
}

func TestGenerate_InvalidConfigRejected(t *testing.T) {
	bad := []Config{
		func() Config { c := DefaultConfig(); c.Width = 2; return c }(),
		func() Config { c := DefaultConfig(); c.Mode = "volcano"; return c }(),
		func() Config { c := DefaultConfig(); c.MaxRoomSize = 3; c.MinRoomSize = 5; return c }(),
		func() Config { c := DefaultConfig(); c.MaxSpawnChance = 200; return c }(),
	}
	for i, cfg := range bad {
		_, err := Generate(1, cfg)
		require.ErrorIs(t, err, ErrInvalidConfig, "config %d accepted", i)
	}
}

func TestGenerate_TerrainHasBands(t *testing.T) {
	lvl, err := Generate(99, terrainConfig())
	require.NoError(t, err)

	// A healthy terrain level mixes kinds rather than being one flat band.
	floor := lvl.Grid.Count(grid.TileFloor)
	wall := lvl.Grid.Count(grid.TileWall)
	require.NotZero(t, floor)
	require.NotZero(t, wall)
}

func BenchmarkGenerate_Dungeon(b *testing.B) {
	cfg := dungeonConfig()
	for i := 0; i < b.N; i++ {
		_, _ = Generate(uint64(i), cfg)
	}
}

func BenchmarkGenerate_Cave(b *testing.B) {
	cfg := caveConfig()
	for i := 0; i < b.N; i++ {
		_, _ = Generate(uint64(i), cfg)
	}
}
