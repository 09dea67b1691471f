package level

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tileforge/tileforge/internal/core/grid"
)

// Mode selects the generation strategy.
type Mode string

const (
	ModeDungeon Mode = "dungeon"
	ModeCave    Mode = "cave"
	ModeTerrain Mode = "terrain"
)

// Config is the full generation parameter set. Together with the seed it
// determines the output completely; two peers holding equal configs and
// seeds always build the same level.
type Config struct {
	Width  int  `yaml:"width" json:"width"`
	Height int  `yaml:"height" json:"height"`
	Mode   Mode `yaml:"mode" json:"mode"`

	// Dungeon parameters.
	MinRoomSize int `yaml:"min_room_size" json:"min_room_size"`
	MaxRoomSize int `yaml:"max_room_size" json:"max_room_size"`
	MaxDepth    int `yaml:"max_depth" json:"max_depth"`

	// Cave parameters.
	FillPercent    int `yaml:"fill_percent" json:"fill_percent"`
	CaveIterations int `yaml:"cave_iterations" json:"cave_iterations"`

	// Terrain parameters.
	Octaves            int `yaml:"octaves" json:"octaves"`
	PersistencePercent int `yaml:"persistence_percent" json:"persistence_percent"`
	FeatureSize        int `yaml:"feature_size" json:"feature_size"`

	// Repair parameters.
	MinRegionSize int `yaml:"min_region_size" json:"min_region_size"`

	// Spawn sampling: the probability of a spawn on a floor cell grows
	// linearly with distance from the start, capping at this percent.
	MaxSpawnChance int `yaml:"max_spawn_chance" json:"max_spawn_chance"`
}

// DefaultConfig returns the baseline parameter set presets override.
func DefaultConfig() Config {
	return Config{
		Width:              80,
		Height:             50,
		Mode:               ModeDungeon,
		MinRoomSize:        4,
		MaxRoomSize:        10,
		MaxDepth:           6,
		FillPercent:        45,
		CaveIterations:     4,
		Octaves:            4,
		PersistencePercent: 50,
		FeatureSize:        12,
		MinRegionSize:      8,
		MaxSpawnChance:     30,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig. Explicit values
// always win; the substitution is deterministic.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.MinRoomSize == 0 {
		c.MinRoomSize = d.MinRoomSize
	}
	if c.MaxRoomSize == 0 {
		c.MaxRoomSize = d.MaxRoomSize
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = d.MaxDepth
	}
	if c.FillPercent == 0 {
		c.FillPercent = d.FillPercent
	}
	if c.CaveIterations == 0 {
		c.CaveIterations = d.CaveIterations
	}
	if c.Octaves == 0 {
		c.Octaves = d.Octaves
	}
	if c.PersistencePercent == 0 {
		c.PersistencePercent = d.PersistencePercent
	}
	if c.FeatureSize == 0 {
		c.FeatureSize = d.FeatureSize
	}
	if c.MinRegionSize == 0 {
		c.MinRegionSize = d.MinRegionSize
	}
	if c.MaxSpawnChance == 0 {
		c.MaxSpawnChance = d.MaxSpawnChance
	}
	return c
}

// Validate rejects configurations no generator can honor. Invalid configs
// fail identically on every peer.
func (c Config) Validate() error {
	if c.Width < 4 || c.Height < 4 {
		return fmt.Errorf("%w: grid %dx%d below minimum 4x4", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Width > grid.MaxDimension || c.Height > grid.MaxDimension {
		return fmt.Errorf("%w: grid %dx%d exceeds %d", ErrInvalidConfig, c.Width, c.Height, grid.MaxDimension)
	}
	switch c.Mode {
	case ModeDungeon, ModeCave, ModeTerrain:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.MinRoomSize < 2 {
		return fmt.Errorf("%w: min room size %d below 2", ErrInvalidConfig, c.MinRoomSize)
	}
	if c.MaxRoomSize < c.MinRoomSize {
		return fmt.Errorf("%w: max room size %d below min %d", ErrInvalidConfig, c.MaxRoomSize, c.MinRoomSize)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth %d below 1", ErrInvalidConfig, c.MaxDepth)
	}
	if c.FillPercent < 0 || c.FillPercent > 100 {
		return fmt.Errorf("%w: fill percent %d outside [0,100]", ErrInvalidConfig, c.FillPercent)
	}
	if c.MaxSpawnChance < 0 || c.MaxSpawnChance > 100 {
		return fmt.Errorf("%w: max spawn chance %d outside [0,100]", ErrInvalidConfig, c.MaxSpawnChance)
	}
	return nil
}

// LoadYAML reads a config preset over the defaults.
func LoadYAML(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("level: decode yaml config: %w", err)
	}
	return c, nil
}

// LoadJSON reads a config preset over the defaults.
func LoadJSON(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("level: decode json config: %w", err)
	}
	return c, nil
}

// encode writes the config as a canonical byte string for cache keys.
func (c Config) encode() []byte {
	buf := make([]byte, 0, 13*8+len(c.Mode))
	put := func(v int) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(int64(v)))
	}
	put(c.Width)
	put(c.Height)
	put(c.MinRoomSize)
	put(c.MaxRoomSize)
	put(c.MaxDepth)
	put(c.FillPercent)
	put(c.CaveIterations)
	put(c.Octaves)
	put(c.PersistencePercent)
	put(c.FeatureSize)
	put(c.MinRegionSize)
	put(c.MaxSpawnChance)
	buf = append(buf, []byte(c.Mode)...)
	return buf
}
