// Package level assembles the generation phases into a single
// Generate(seed, config) call and owns the resulting world until it is
// returned to the caller.
package level

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/tileforge/tileforge/internal/core/grid"
)

// SpawnPoint is a candidate entity placement. Difficulty is the cell's BFS
// distance from the start normalized to [0, 1].
type SpawnPoint struct {
	Pos        grid.Point `json:"pos"`
	Difficulty float64    `json:"difficulty"`
}

// Level is the finished generation output. The grid, positions, and spawn
// list are byte-identical across peers for equal (seed, config).
type Level struct {
	Seed   uint64
	Config Config
	Grid   *grid.Grid
	Start  grid.Point
	Exit   grid.Point
	Spawns []SpawnPoint
}

// Hash digests the grid and all annotations. Peers exchange this value to
// confirm they are standing in the same world.
func (l *Level) Hash() uint64 {
	d := xxhash.New()
	var b [8]byte

	binary.LittleEndian.PutUint64(b[:], l.Grid.Hash())
	_, _ = d.Write(b[:])

	writePoint := func(p grid.Point) {
		binary.LittleEndian.PutUint32(b[0:4], uint32(p.X))
		binary.LittleEndian.PutUint32(b[4:8], uint32(p.Y))
		_, _ = d.Write(b[:])
	}
	writePoint(l.Start)
	writePoint(l.Exit)

	for _, s := range l.Spawns {
		writePoint(s.Pos)
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(s.Difficulty))
		_, _ = d.Write(b[:])
	}
	return d.Sum64()
}
