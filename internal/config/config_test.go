package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/battleline/internal/scoring"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Engine.Depth)
	assert.Equal(t, ChooserFirst, cfg.Engine.Chooser)
	assert.Equal(t, 6, cfg.Game.HandCapacity)
	assert.Equal(t, runtime.NumCPU(), cfg.Simulation.Workers)
	assert.Equal(t, log.InfoLevel, cfg.Level())

	s, err := cfg.Scheme()
	require.NoError(t, err)
	assert.Equal(t, scoring.UnitWeights, s.Weights())

	// defaults do not share the package weights
	cfg.Engine.Weights[0] = 7
	assert.Equal(t, 1.0, scoring.UnitWeights[0])
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "battleline.hcl")
	src := `
engine {
  depth     = 4
  weights   = [1, 16, 50, 422, 543]
  tolerance = 0.001
  chooser   = "random"
}

game {
  seed = 1234
}

simulation {
  games    = 500
  workers  = 2
  opponent = "random"
}

log {
  level = "debug"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4, cfg.Engine.Depth)
	assert.Equal(t, []float64{1, 16, 50, 422, 543}, cfg.Engine.Weights)
	assert.InDelta(t, 0.001, cfg.Engine.Tolerance, 1e-12)
	assert.Equal(t, ChooserRandom, cfg.Engine.Chooser)
	assert.Equal(t, int64(1234), cfg.Game.Seed)
	assert.Equal(t, 6, cfg.Game.HandCapacity)
	assert.Equal(t, 500, cfg.Simulation.Games)
	assert.Equal(t, 2, cfg.Simulation.Workers)
	assert.Equal(t, OpponentRandom, cfg.Simulation.Opponent)
	assert.Equal(t, 4, cfg.Simulation.OpponentDepth, "opponent depth follows engine depth")
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestParsePartial(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`engine { depth = 3 }`), "partial.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	d := Default()
	assert.Equal(t, 3, cfg.Engine.Depth)
	assert.Equal(t, d.Engine.Weights, cfg.Engine.Weights)
	assert.Equal(t, d.Engine.Chooser, cfg.Engine.Chooser)
	assert.Equal(t, d.Simulation, cfg.Simulation)
	assert.Equal(t, d.Log, cfg.Log)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `engine {`},
		{"unknown block", `network { port = 1 }`},
		{"unknown attribute", `engine { width = 3 }`},
		{"wrong type", `engine { depth = "deep" }`},
		{"repeated block", "engine {}\nengine {}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.name+".hcl")
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative depth", func(c *Config) { c.Engine.Depth = -1 }},
		{"short weights", func(c *Config) { c.Engine.Weights = []float64{1, 2} }},
		{"decreasing weights", func(c *Config) { c.Engine.Weights = []float64{1, 2, 3, 4, 0} }},
		{"negative tolerance", func(c *Config) { c.Engine.Tolerance = -0.1 }},
		{"unknown chooser", func(c *Config) { c.Engine.Chooser = "dice" }},
		{"zero hand capacity", func(c *Config) { c.Game.HandCapacity = 0 }},
		{"no games", func(c *Config) { c.Simulation.Games = 0 }},
		{"no workers", func(c *Config) { c.Simulation.Workers = 0 }},
		{"unknown opponent", func(c *Config) { c.Simulation.Opponent = "human" }},
		{"opponent depth", func(c *Config) { c.Simulation.OpponentDepth = 0 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLevelFallback(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Log.Level = "warn"
	assert.Equal(t, log.WarnLevel, cfg.Level())
	cfg.Log.Level = "bogus"
	assert.Equal(t, log.InfoLevel, cfg.Level())
}
