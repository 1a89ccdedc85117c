// Package config loads engine, game and simulation settings from an HCL
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/battleline/internal/game"
	"github.com/lox/battleline/internal/scoring"
)

var ErrInvalid = errors.New("invalid configuration")

// Chooser names.
const (
	ChooserFirst  = "first"
	ChooserRandom = "random"
)

// Opponent names for simulations.
const (
	OpponentEngine = "engine"
	OpponentRandom = "random"
	OpponentFirst  = "first"
)

// Config is the complete configuration.
type Config struct {
	Engine     EngineSettings
	Game       GameSettings
	Simulation SimulationSettings
	Log        LogSettings
}

// EngineSettings tune the decision engine.
type EngineSettings struct {
	Depth     int       `hcl:"depth,optional"`
	Weights   []float64 `hcl:"weights,optional"`
	Tolerance float64   `hcl:"tolerance,optional"`
	Chooser   string    `hcl:"chooser,optional"`
}

// GameSettings describe the table. A zero seed asks for a random one.
type GameSettings struct {
	Seed         int64 `hcl:"seed,optional"`
	HandCapacity int   `hcl:"hand_capacity,optional"`
}

// SimulationSettings control batch self-play.
type SimulationSettings struct {
	Games         int    `hcl:"games,optional"`
	Workers       int    `hcl:"workers,optional"`
	Opponent      string `hcl:"opponent,optional"`
	OpponentDepth int    `hcl:"opponent_depth,optional"`
}

type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// file mirrors Config with every block optional.
type file struct {
	Engine     *EngineSettings     `hcl:"engine,block"`
	Game       *GameSettings       `hcl:"game,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineSettings{
			Depth:   10,
			Weights: slices.Clone(scoring.UnitWeights[:]),
			Chooser: ChooserFirst,
		},
		Game: GameSettings{
			HandCapacity: game.HandSize,
		},
		Simulation: SimulationSettings{
			Games:         100,
			Workers:       runtime.NumCPU(),
			Opponent:      OpponentEngine,
			OpponentDepth: 10,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(f.Body)
}

// Parse decodes HCL source; filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(f.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var raw file
	if diags := gohcl.DecodeBody(body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Engine != nil {
		cfg.Engine = *raw.Engine
	}
	if raw.Game != nil {
		cfg.Game = *raw.Game
	}
	if raw.Simulation != nil {
		cfg.Simulation = *raw.Simulation
	}
	if raw.Log != nil {
		cfg.Log = *raw.Log
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills attributes a block left out.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Engine.Depth == 0 {
		c.Engine.Depth = d.Engine.Depth
	}
	if len(c.Engine.Weights) == 0 {
		c.Engine.Weights = d.Engine.Weights
	}
	if c.Engine.Chooser == "" {
		c.Engine.Chooser = d.Engine.Chooser
	}
	if c.Game.HandCapacity == 0 {
		c.Game.HandCapacity = d.Game.HandCapacity
	}
	if c.Simulation.Games == 0 {
		c.Simulation.Games = d.Simulation.Games
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = d.Simulation.Workers
	}
	if c.Simulation.Opponent == "" {
		c.Simulation.Opponent = d.Simulation.Opponent
	}
	if c.Simulation.OpponentDepth == 0 {
		c.Simulation.OpponentDepth = c.Engine.Depth
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Engine.Depth < 1 {
		return fmt.Errorf("%w: engine depth must be at least 1, got %d", ErrInvalid, c.Engine.Depth)
	}
	if _, err := c.Scheme(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Engine.Tolerance < 0 {
		return fmt.Errorf("%w: engine tolerance must not be negative", ErrInvalid)
	}
	if c.Engine.Chooser != ChooserFirst && c.Engine.Chooser != ChooserRandom {
		return fmt.Errorf("%w: unknown chooser %q", ErrInvalid, c.Engine.Chooser)
	}
	if c.Game.HandCapacity < 1 {
		return fmt.Errorf("%w: hand capacity must be positive", ErrInvalid)
	}
	if c.Simulation.Games < 1 {
		return fmt.Errorf("%w: simulation needs at least one game", ErrInvalid)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("%w: simulation needs at least one worker", ErrInvalid)
	}
	switch c.Simulation.Opponent {
	case OpponentEngine, OpponentRandom, OpponentFirst:
	default:
		return fmt.Errorf("%w: unknown opponent %q", ErrInvalid, c.Simulation.Opponent)
	}
	if c.Simulation.OpponentDepth < 1 {
		return fmt.Errorf("%w: opponent depth must be at least 1", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Scheme builds the scoring scheme from the configured weights.
func (c *Config) Scheme() (*scoring.Scheme, error) {
	return scoring.FromSlice(c.Engine.Weights)
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
