package level

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadYAML_OverridesDefaults(t *testing.T) {
	src := `
width: 120
height: 90
mode: cave
fill_percent: 52
cave_iterations: 5
`
	cfg, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 120, cfg.Width)
	require.Equal(t, 90, cfg.Height)
	require.Equal(t, ModeCave, cfg.Mode)
	require.Equal(t, 52, cfg.FillPercent)
	require.Equal(t, 5, cfg.CaveIterations)

	// Untouched fields keep defaults.
	require.Equal(t, DefaultConfig().MinRoomSize, cfg.MinRoomSize)
	require.Equal(t, DefaultConfig().MinRegionSize, cfg.MinRegionSize)
}

func TestLoadYAML_Garbage(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("{["))
	require.Error(t, err)
}

func TestLoadJSON_OverridesDefaults(t *testing.T) {
	src := `{"width": 32, "height": 32, "mode": "terrain", "octaves": 6}`
	cfg, err := LoadJSON(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 32, cfg.Width)
	require.Equal(t, ModeTerrain, cfg.Mode)
	require.Equal(t, 6, cfg.Octaves)
}

func TestConfig_WithDefaultsKeepsExplicit(t *testing.T) {
	c := Config{Width: 40, Height: 30, Mode: ModeCave, FillPercent: 60}
	full := c.withDefaults()
	require.Equal(t, 40, full.Width)
	require.Equal(t, 60, full.FillPercent)
	require.Equal(t, DefaultConfig().MaxDepth, full.MaxDepth)
	require.NoError(t, full.Validate())
}

func TestConfig_ValidateDefaults(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_EncodeCanonical(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	require.Equal(t, a.encode(), b.encode())

	b.FillPercent = 46
	require.NotEqual(t, a.encode(), b.encode())

	c := DefaultConfig()
	c.Mode = ModeCave
	require.NotEqual(t, a.encode(), c.encode())
}
